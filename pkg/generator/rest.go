package generator

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/go-http-kit/httpkit"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// RESTGenerator は Stable Diffusion バックエンドの生成エンドポイントを呼び出します。
// 送信は httpkit の Do を使い、失敗しても再送しません。
type RESTGenerator struct {
	client  Doer
	baseURL string
	now     func() time.Time
}

// NewRESTGenerator は API ベースURL（例: http://localhost:8000/api/v1）から RESTGenerator を作成します。
func NewRESTGenerator(client Doer, apiBaseURL string) *RESTGenerator {
	return &RESTGenerator{
		client:  client,
		baseURL: strings.TrimSuffix(apiBaseURL, "/"),
		now:     time.Now,
	}
}

// Generate はスケッチと固定パラメータをマルチパートで送信し、返ってきた画像を結果として返します。
func (g *RESTGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	body, contentType, err := buildMultipart(req.Sketch, req.MimeType, []formField{
		{fieldPrompt, req.Prompt},
		{fieldNumInferenceSteps, strconv.Itoa(req.Params.NumInferenceSteps)},
		{fieldGuidanceScale, formatFloat(req.Params.GuidanceScale)},
		{fieldStrength, formatFloat(req.Params.Strength)},
	})
	if err != nil {
		return nil, fmt.Errorf("リクエストボディの構築に失敗しました: %w", err)
	}

	slog.DebugContext(ctx, "生成リクエストを送信します",
		"endpoint", g.baseURL+SketchToImagePath,
		"style", req.StyleID,
		"sketch_bytes", len(req.Sketch),
	)

	data, mimeType, err := g.post(ctx, SketchToImagePath, body, contentType)
	if err != nil {
		return nil, err
	}

	return &domain.GenerationResult{
		ID:        uuid.NewString(),
		StyleID:   req.StyleID,
		Prompt:    req.Prompt,
		Params:    req.Params,
		Data:      data,
		MimeType:  mimeType,
		CreatedAt: g.now(),
	}, nil
}

// TextToImage はプロンプトと画像サイズを送信し、返ってきた画像を結果として返します。
func (g *RESTGenerator) TextToImage(ctx context.Context, req domain.TextToImageRequest) (*domain.GenerationResult, error) {
	fields := []formField{{fieldPrompt, req.Prompt}}
	if req.NegativePrompt != "" {
		fields = append(fields, formField{fieldNegativePrompt, req.NegativePrompt})
	}
	fields = append(fields,
		formField{fieldNumInferenceSteps, strconv.Itoa(req.Params.NumInferenceSteps)},
		formField{fieldGuidanceScale, formatFloat(req.Params.GuidanceScale)},
		formField{fieldWidth, strconv.Itoa(req.Width)},
		formField{fieldHeight, strconv.Itoa(req.Height)},
	)
	body, contentType, err := buildMultipart(nil, "", fields)
	if err != nil {
		return nil, fmt.Errorf("リクエストボディの構築に失敗しました: %w", err)
	}

	data, mimeType, err := g.post(ctx, TextToImagePath, body, contentType)
	if err != nil {
		return nil, err
	}

	return &domain.GenerationResult{
		ID:        uuid.NewString(),
		Prompt:    req.Prompt,
		Params:    req.Params,
		Data:      data,
		MimeType:  mimeType,
		CreatedAt: g.now(),
	}, nil
}

// post はボディを1回だけ送信し、2xx の画像応答を返します。
func (g *RESTGenerator) post(ctx context.Context, path string, body []byte, contentType string) ([]byte, string, error) {
	endpoint := g.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "image/*")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("生成エンドポイントの呼び出しに失敗しました: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := httpkit.HandleResponse(resp)
	if err != nil {
		return nil, "", fmt.Errorf("生成エンドポイントがエラーを返しました (status: %d): %w", resp.StatusCode, err)
	}

	mimeType := http.DetectContentType(data)
	if len(data) == 0 || !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("生成エンドポイントの応答が画像ではありません (type: %s, bytes: %d)", mimeType, len(data))
	}

	slog.InfoContext(ctx, "画像を受信しました",
		"endpoint", endpoint,
		"mime_type", mimeType,
		"bytes", len(data),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return data, mimeType, nil
}

type formField struct {
	name, value string
}

// buildMultipart はフォームを組み立てます。sketch が空ならファイルパートを含めません。
func buildMultipart(sketch []byte, sketchMime string, fields []formField) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if len(sketch) > 0 {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldSketch, SketchFileName))
		h.Set("Content-Type", sketchMime)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(sketch); err != nil {
			return nil, "", err
		}
	}

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
