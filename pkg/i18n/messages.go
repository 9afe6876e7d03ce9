package i18n

import "golang.org/x/text/language"

// メッセージキー
const (
	KeySelectStyle   = "errors.selectStyle"
	KeyDrawSketch    = "errors.drawSketch"
	KeyGeneration    = "errors.generation"
	KeyTitle         = "generation.title"
	KeyGenerate      = "generation.generate"
	KeyGenerating    = "generation.generating"
	KeyResult        = "generation.result"
	KeyLoginRequired = "auth.loginRequired"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		KeySelectStyle:   "Please select an architectural style",
		KeyDrawSketch:    "Please draw a sketch first",
		KeyGeneration:    "Failed to generate the image. Please try again.",
		KeyTitle:         "Generate Architectural Visualization",
		KeyGenerate:      "Generate",
		KeyGenerating:    "Generating...",
		KeyResult:        "Generated Result",
		KeyLoginRequired: "Please log in to continue",
	},
	language.Hindi: {
		KeySelectStyle:   "कृपया एक स्थापत्य शैली चुनें",
		KeyDrawSketch:    "कृपया पहले एक स्केच बनाएं",
		KeyGeneration:    "छवि बनाने में विफल। कृपया पुनः प्रयास करें।",
		KeyTitle:         "स्थापत्य दृश्य बनाएं",
		KeyGenerate:      "बनाएं",
		KeyGenerating:    "बनाया जा रहा है...",
		KeyResult:        "परिणाम",
		KeyLoginRequired: "जारी रखने के लिए कृपया लॉग इन करें",
	},
	language.Tamil: {
		KeySelectStyle:   "தயவுசெய்து ஒரு கட்டிடக்கலை பாணியைத் தேர்ந்தெடுக்கவும்",
		KeyDrawSketch:    "தயவுசெய்து முதலில் ஒரு வரைபடத்தை வரையவும்",
		KeyGeneration:    "படத்தை உருவாக்க முடியவில்லை. மீண்டும் முயற்சிக்கவும்.",
		KeyTitle:         "கட்டிடக்கலை காட்சியை உருவாக்கு",
		KeyGenerate:      "உருவாக்கு",
		KeyGenerating:    "உருவாக்குகிறது...",
		KeyResult:        "உருவாக்கப்பட்ட முடிவு",
		KeyLoginRequired: "தொடர உள்நுழையவும்",
	},
	language.Bengali: {
		KeySelectStyle:   "অনুগ্রহ করে একটি স্থাপত্য শৈলী নির্বাচন করুন",
		KeyDrawSketch:    "অনুগ্রহ করে প্রথমে একটি স্কেচ আঁকুন",
		KeyGeneration:    "ছবি তৈরি করা যায়নি। আবার চেষ্টা করুন।",
		KeyTitle:         "স্থাপত্য দৃশ্য তৈরি করুন",
		KeyGenerate:      "তৈরি করুন",
		KeyGenerating:    "তৈরি হচ্ছে...",
		KeyResult:        "ফলাফল",
		KeyLoginRequired: "চালিয়ে যেতে লগ ইন করুন",
	},
}
