package builder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-archviz-kit/internal/config"
	"github.com/shouni/go-archviz-kit/internal/runner"
	"github.com/shouni/go-archviz-kit/pkg/domain"
	"github.com/shouni/go-archviz-kit/pkg/generator"
	"github.com/shouni/go-archviz-kit/pkg/history"
	"github.com/shouni/go-archviz-kit/pkg/publisher"
	"github.com/shouni/go-archviz-kit/pkg/styles"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// thumbnailCleanupInterval は参照画像キャッシュの掃除間隔です。
const thumbnailCleanupInterval = 1 * time.Hour

// BuildGenerator は設定されたバックエンドの Generator を構築します。
func BuildGenerator(ctx context.Context, appCtx *AppContext) (generator.Generator, error) {
	cfg := appCtx.Config
	switch cfg.Backend {
	case config.BackendREST:
		return generator.NewRESTGenerator(appCtx.httpClient, cfg.APIURL), nil
	case config.BackendGemini:
		models, err := generator.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
		}
		return generator.NewGeminiGenerator(models, cfg.ImageModel), nil
	default:
		return nil, fmt.Errorf("未対応のバックエンド '%s' なのだ", cfg.Backend)
	}
}

// BuildTextGenerator はプロンプトだけから画像を作る TextGenerator を構築します。
func BuildTextGenerator(ctx context.Context, appCtx *AppContext) (generator.TextGenerator, error) {
	gen, err := BuildGenerator(ctx, appCtx)
	if err != nil {
		return nil, err
	}
	tg, ok := gen.(generator.TextGenerator)
	if !ok {
		return nil, fmt.Errorf("バックエンド '%s' はテキストからの生成に対応していないのだ", appCtx.Config.Backend)
	}
	return tg, nil
}

// BuildRenderRunner は1件分の生成を担当する Runner を構築します。
// recorder が nil なら履歴は残しません。
func BuildRenderRunner(gen generator.Generator, appCtx *AppContext, recorder runner.HistoryRecorder) *runner.RenderRunner {
	return runner.NewRenderRunner(
		gen,
		appCtx.Localizer,
		appCtx.Reader,
		publisher.NewRenderPublisher(appCtx.Writer),
		recorder,
		appCtx.Catalog,
		appCtx.Config.Backend,
		appCtx.Options.OutputDir,
	)
}

// BuildTextRunner はプロンプトから生成する Runner を構築します。
func BuildTextRunner(gen generator.TextGenerator, appCtx *AppContext, recorder runner.HistoryRecorder) *runner.TextRunner {
	return runner.NewTextRunner(
		gen,
		publisher.NewRenderPublisher(appCtx.Writer),
		recorder,
		appCtx.Config.Backend,
		appCtx.Options.OutputDir,
	)
}

// BuildThumbnailer は参照画像の取得器を構築します。
func BuildThumbnailer(appCtx *AppContext) *styles.Thumbnailer {
	c := cache.New(config.DefaultCacheTTL, thumbnailCleanupInterval)
	return styles.NewThumbnailer(appCtx.httpClient, appCtx.Reader, c, config.DefaultCacheTTL, appCtx.Config.APIURL)
}

// LoadStyles は様式カタログを決めます。
// ARCHVIZ_STYLES_FILE があればそれを、様式の取得元が api なら API の一覧を、それ以外は組み込みカタログを使います。
// API の取得に失敗したか1件も取れない場合は、警告を出して組み込みカタログに戻ります。
func LoadStyles(ctx context.Context, cfg *config.Config, reader remoteio.InputReader, remote styles.RemoteStyleSource) (domain.StyleCatalog, error) {
	if cfg.StylesFile != "" {
		catalog, err := styles.LoadCatalog(ctx, reader, cfg.StylesFile)
		if err != nil {
			return nil, fmt.Errorf("様式カタログの取得に失敗しました: %w", err)
		}
		slog.Debug("様式カタログを読み込んだのだ", "uri", cfg.StylesFile, "count", len(catalog))
		return catalog, nil
	}

	if cfg.StylesSource != config.StylesSourceAPI || remote == nil {
		return styles.DefaultCatalog(), nil
	}
	catalog, err := styles.LoadRemoteCatalog(ctx, remote)
	if err != nil {
		slog.WarnContext(ctx, "API の様式を使えないため組み込みカタログを使うのだ", "error", err)
		return styles.DefaultCatalog(), nil
	}
	return catalog, nil
}

// OpenHistory は生成履歴ストアを開きます。
func OpenHistory(ctx context.Context, appCtx *AppContext) (*history.Store, error) {
	store, err := history.Open(ctx, appCtx.Config.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("生成履歴を開けませんでした: %w", err)
	}
	return store, nil
}
