package styles

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

const defaultThumbnailParallel = 4

// ImageCacher はサムネイルのバイト列をキャッシュします。go-cache の *cache.Cache が満たします。
type ImageCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// HTTPClient は URL から画像を取得します。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Thumbnail は取得済みの参照画像です。
type Thumbnail struct {
	StyleID  string
	Data     []byte
	MimeType string
}

// Thumbnailer は様式の参照画像を並列に取得してキャッシュします。
// http(s) の URL は HTTPClient で、それ以外（ローカルパス、gs://）は InputReader で読み込みます。
type Thumbnailer struct {
	httpClient HTTPClient
	reader     remoteio.InputReader
	cache      ImageCacher
	cacheTTL   time.Duration
	baseURL    string
	parallel   int
}

// NewThumbnailer は Thumbnailer を作成します。
// baseURL は "/styles/mughal.jpg" のような相対参照を解決するための接頭辞です。
func NewThumbnailer(httpClient HTTPClient, reader remoteio.InputReader, cache ImageCacher, cacheTTL time.Duration, baseURL string) *Thumbnailer {
	return &Thumbnailer{
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		cacheTTL:   cacheTTL,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		parallel:   defaultThumbnailParallel,
	}
}

// Prefetch はカタログ全体の参照画像を並列で取得します。
// 個々の取得失敗はログに残して読み飛ばし、取得できたものだけをカタログ順で返します。
func (t *Thumbnailer) Prefetch(ctx context.Context, catalog domain.StyleCatalog) ([]Thumbnail, error) {
	results := make([]*Thumbnail, len(catalog))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(t.parallel)
	for i, style := range catalog {
		if style.ImageURL == "" {
			continue
		}
		eg.Go(func() error {
			thumb, err := t.Fetch(egCtx, style)
			if err != nil {
				if egCtx.Err() != nil {
					return egCtx.Err()
				}
				slog.WarnContext(egCtx, "参照画像の取得に失敗しました", "style", style.ID, "url", style.ImageURL, "error", err)
				return nil
			}
			results[i] = thumb
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("参照画像のプリフェッチが中断されました: %w", err)
	}

	thumbs := make([]Thumbnail, 0, len(results))
	for _, r := range results {
		if r != nil {
			thumbs = append(thumbs, *r)
		}
	}
	return thumbs, nil
}

// Fetch は1つの様式の参照画像を取得します。キャッシュにあればそれを返します。
func (t *Thumbnailer) Fetch(ctx context.Context, style domain.Style) (*Thumbnail, error) {
	src := t.resolve(style.ImageURL)

	if cached, found := t.cache.Get(src); found {
		if data, ok := cached.([]byte); ok {
			return newThumbnail(style.ID, data), nil
		}
		slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", src, "type", fmt.Sprintf("%T", cached))
	}

	data, err := t.load(ctx, src)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("参照画像 '%s' が空です", src)
	}

	t.cache.Set(src, data, t.cacheTTL)
	return newThumbnail(style.ID, data), nil
}

func (t *Thumbnailer) resolve(imageURL string) string {
	if t.baseURL != "" && strings.HasPrefix(imageURL, "/") {
		return t.baseURL + imageURL
	}
	return imageURL
}

func (t *Thumbnailer) load(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err := t.httpClient.FetchBytes(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("参照画像 '%s' のダウンロードに失敗しました: %w", src, err)
		}
		return data, nil
	}

	rc, err := t.reader.Open(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("参照画像 '%s' を開けませんでした: %w", src, err)
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func newThumbnail(styleID string, data []byte) *Thumbnail {
	return &Thumbnail{
		StyleID:  styleID,
		Data:     data,
		MimeType: http.DetectContentType(data),
	}
}
