package generator

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

func whitePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "here you go"},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}},
			}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func TestGeminiGenerator_Generate(t *testing.T) {
	sketch := whitePNG(t)
	req, err := domain.NewGenerationRequest("Temple", sketch, "image/png")
	require.NoError(t, err)

	models := &mockModels{resp: imageResponse([]byte("rendered"))}
	g := NewGeminiGenerator(models, "")

	res, err := g.Generate(context.Background(), *req)
	require.NoError(t, err)

	assert.Equal(t, 1, models.calls)
	assert.Equal(t, DefaultImageModel, models.model)
	assert.Equal(t, []string{"IMAGE", "TEXT"}, models.config.ResponseModalities)
	assert.Equal(t, []byte("rendered"), res.Data)
	assert.Equal(t, "image/png", res.MimeType)
	assert.Equal(t, "Temple", res.StyleID)

	t.Run("スケッチはJPEGに圧縮されて送られるのだ", func(t *testing.T) {
		require.Len(t, models.contents, 1)
		parts := models.contents[0].Parts
		require.Len(t, parts, 2)
		assert.Equal(t, "image/jpeg", parts[0].InlineData.MIMEType)
		assert.Contains(t, parts[1].Text, "Temple style building")
	})
}

func TestGeminiGenerator_Errors(t *testing.T) {
	req, err := domain.NewGenerationRequest("Temple", []byte("not an image"), "image/png")
	require.NoError(t, err)

	tests := []struct {
		name    string
		models  *mockModels
		wantErr string
	}{
		{"API エラー", &mockModels{err: errors.New("quota")}, "quota"},
		{"候補なし", &mockModels{resp: &genai.GenerateContentResponse{}}, "有効な応答"},
		{"安全フィルター", &mockModels{resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}}, "SAFETY"},
		{"画像なし", &mockModels{resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: "sorry"}}}}},
		}}, "見つかりませんでした"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeminiGenerator(tt.models, "custom-model").Generate(context.Background(), *req)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Equal(t, "custom-model", tt.models.model)
		})
	}
}

func TestGeminiGenerator_TextToImage(t *testing.T) {
	req, err := domain.NewTextToImageRequest("a sandstone haveli", "cars")
	require.NoError(t, err)

	models := &mockModels{resp: imageResponse([]byte("rendered"))}
	res, err := NewGeminiGenerator(models, "").TextToImage(context.Background(), *req)
	require.NoError(t, err)

	assert.Equal(t, 1, models.calls)
	require.Len(t, models.contents, 1)
	parts := models.contents[0].Parts
	require.Len(t, parts, 1)
	assert.Equal(t, "a sandstone haveli. Avoid: cars", parts[0].Text)
	assert.Equal(t, []byte("rendered"), res.Data)
	assert.Equal(t, "a sandstone haveli", res.Prompt)
}
