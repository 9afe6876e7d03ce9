package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultInferenceSteps などは生成ページが常に送る固定値です。
	DefaultInferenceSteps = 30
	DefaultGuidanceScale  = 7.5
	DefaultStrength       = 0.75

	// DefaultImageSize は文章からの生成で指定する画像の一辺です。
	DefaultImageSize = 768

	promptFormat = "%s style building, architectural visualization"
)

var (
	// ErrStyleRequired は様式が未選択のまま生成しようとした場合のエラーです。
	ErrStyleRequired = errors.New("style is required")
	// ErrSketchRequired はスケッチが空のまま生成しようとした場合のエラーです。
	ErrSketchRequired = errors.New("sketch is required")
	// ErrPromptRequired はプロンプトが空のまま文章から生成しようとした場合のエラーです。
	ErrPromptRequired = errors.New("prompt is required")
)

// GenerationParams は生成エンドポイントに渡す数値パラメータです。
type GenerationParams struct {
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	Strength          float64 `json:"strength"` // img2img のデノイズ強度
}

// DefaultGenerationParams は固定のデフォルトパラメータを返します。
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		NumInferenceSteps: DefaultInferenceSteps,
		GuidanceScale:     DefaultGuidanceScale,
		Strength:          DefaultStrength,
	}
}

// GenerationRequest は1回の送信ごとに新しく組み立てられる生成要求です。
// NewGenerationRequest 経由でのみ有効な値を作れます。
type GenerationRequest struct {
	StyleID  string
	Sketch   []byte
	MimeType string
	Prompt   string
	Params   GenerationParams
}

// NewGenerationRequest はスケッチと様式が揃っている場合のみリクエストを構築します。
// 様式の欠落はスケッチの欠落より先に判定されます。
func NewGenerationRequest(styleID string, sketch []byte, mimeType string) (*GenerationRequest, error) {
	if styleID == "" {
		return nil, ErrStyleRequired
	}
	if len(sketch) == 0 {
		return nil, ErrSketchRequired
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	return &GenerationRequest{
		StyleID:  styleID,
		Sketch:   sketch,
		MimeType: mimeType,
		Prompt:   BuildPrompt(styleID),
		Params:   DefaultGenerationParams(),
	}, nil
}

// BuildPrompt は様式 ID から生成プロンプトを組み立てます。
func BuildPrompt(styleID string) string {
	return fmt.Sprintf(promptFormat, styleID)
}

// GenerationResult は生成された画像と入力パラメータのエコーです。
type GenerationResult struct {
	ID        string           `json:"id"`
	StyleID   string           `json:"style_id"`
	Prompt    string           `json:"prompt"`
	Params    GenerationParams `json:"params"`
	Data      []byte           `json:"-"`
	MimeType  string           `json:"mime_type"`
	ImageURL  string           `json:"image_url,omitempty"` // 保存後の参照先
	CreatedAt time.Time        `json:"created_at"`
}

// TextToImageRequest はスケッチを使わずプロンプトだけで生成する要求です。
type TextToImageRequest struct {
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
	Params         GenerationParams // Strength は使いません
}

// NewTextToImageRequest は空でないプロンプトからリクエストを構築します。
func NewTextToImageRequest(prompt, negativePrompt string) (*TextToImageRequest, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrPromptRequired
	}
	params := DefaultGenerationParams()
	params.Strength = 0
	return &TextToImageRequest{
		Prompt:         prompt,
		NegativePrompt: strings.TrimSpace(negativePrompt),
		Width:          DefaultImageSize,
		Height:         DefaultImageSize,
		Params:         params,
	}, nil
}
