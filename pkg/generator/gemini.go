package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/gemini-image-kit/pkg/imgutil"
	"google.golang.org/genai"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

const sketchInstruction = "Render this hand-drawn sketch as a photorealistic building. Keep the massing, outline and proportions of the sketch."

// GeminiGenerator は Gemini の画像生成モデルでスケッチをパースに変換します。
// 数値パラメータはモデル側に対応する設定が無いため、結果へのエコーのみです。
type GeminiGenerator struct {
	models ContentGenerator
	model  string
	now    func() time.Time
}

// NewGeminiGenerator は GeminiGenerator を作成します。model が空ならデフォルトモデルを使います。
func NewGeminiGenerator(models ContentGenerator, model string) *GeminiGenerator {
	if model == "" {
		model = DefaultImageModel
	}
	return &GeminiGenerator{
		models: models,
		model:  model,
		now:    time.Now,
	}
}

// NewGeminiClient は API キーから genai クライアントを作成し、その Models サービスを返します。
func NewGeminiClient(ctx context.Context, apiKey string) (ContentGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return client.Models, nil
}

// Generate はスケッチ画像とプロンプトをモデルに送り、最初の画像パーツを結果として返します。
func (g *GeminiGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	sketch, mimeType := req.Sketch, req.MimeType
	if compressed, err := imgutil.CompressToJPEG(req.Sketch, ImageCompressionQuality); err == nil {
		sketch, mimeType = compressed, "image/jpeg"
	} else {
		slog.WarnContext(ctx, "スケッチの圧縮に失敗したため元データを送信します", "error", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(sketch, mimeType),
		genai.NewPartFromText(req.Prompt + ". " + sketchInstruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Geminiへの生成リクエストに失敗しました: %w", err)
	}

	data, outMime, err := parseImageResponse(resp)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "画像を受信しました",
		"model", g.model,
		"style", req.StyleID,
		"mime_type", outMime,
		"bytes", len(data),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return &domain.GenerationResult{
		ID:        uuid.NewString(),
		StyleID:   req.StyleID,
		Prompt:    req.Prompt,
		Params:    req.Params,
		Data:      data,
		MimeType:  outMime,
		CreatedAt: g.now(),
	}, nil
}

// TextToImage はプロンプトだけをモデルに送り、最初の画像パーツを結果として返します。
func (g *GeminiGenerator) TextToImage(ctx context.Context, req domain.TextToImageRequest) (*domain.GenerationResult, error) {
	prompt := req.Prompt
	if req.NegativePrompt != "" {
		prompt += ". Avoid: " + req.NegativePrompt
	}
	contents := []*genai.Content{genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Geminiへの生成リクエストに失敗しました: %w", err)
	}
	data, outMime, err := parseImageResponse(resp)
	if err != nil {
		return nil, err
	}

	return &domain.GenerationResult{
		ID:        uuid.NewString(),
		Prompt:    req.Prompt,
		Params:    req.Params,
		Data:      data,
		MimeType:  outMime,
		CreatedAt: g.now(),
	}, nil
}

// parseImageResponse は最初の候補から画像パーツを探します。
func parseImageResponse(resp *genai.GenerateContentResponse) ([]byte, string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, "", fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, nil
			}
		}
	}

	// 安全フィルター等によるブロック
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, "", fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}
	return nil, "", fmt.Errorf("画像データが見つかりませんでした")
}
