package generator

const (
	// SketchToImagePath は API ベースURLからの生成エンドポイントの相対パスです。
	SketchToImagePath = "/generation/sketch-to-image"
	// TextToImagePath はプロンプトだけで生成するエンドポイントの相対パスです。
	TextToImagePath = "/generation/text-to-image"
	// SketchFileName はマルチパートで送るスケッチのファイル名です。
	SketchFileName = "sketch.png"

	// DefaultImageModel は Gemini バックエンドで使う画像生成モデルです。
	DefaultImageModel = "gemini-2.5-flash-image"
	// ImageCompressionQuality は Gemini に送る前のスケッチの JPEG 品質です。
	ImageCompressionQuality = 75

	fieldSketch            = "sketch"
	fieldPrompt            = "prompt"
	fieldNegativePrompt    = "negative_prompt"
	fieldNumInferenceSteps = "num_inference_steps"
	fieldGuidanceScale     = "guidance_scale"
	fieldStrength          = "strength"
	fieldWidth             = "width"
	fieldHeight            = "height"
)
