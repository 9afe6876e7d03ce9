package generator

import (
	"context"
	"net/http"

	"google.golang.org/genai"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// Generator はスケッチと様式から建築パースを1枚生成します。
// 呼び出しごとに外部エンドポイントへちょうど1回アクセスし、自動リトライはしません。
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
}

// TextGenerator はプロンプトだけから画像を1枚生成します。呼び出し回数の約束は Generator と同じです。
type TextGenerator interface {
	TextToImage(ctx context.Context, req domain.TextToImageRequest) (*domain.GenerationResult, error)
}

// Doer はリクエストを1回だけ送ります。
// *httpkit.Client の Do はリトライを挟まないため、これを満たす実装として使います。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ContentGenerator は genai の Models サービスが満たす最小のインターフェースです。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
