package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-archviz-kit/internal/builder"
	"github.com/shouni/go-archviz-kit/internal/config"
	"github.com/shouni/go-archviz-kit/internal/runner"
	"github.com/shouni/go-archviz-kit/pkg/api"
	"github.com/shouni/go-archviz-kit/pkg/domain"
	"github.com/shouni/go-archviz-kit/pkg/generator"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// ExecuteRender は1枚のスケッチ（ストロークJSON または画像）から建築パースを生成して保存するのだ。
func ExecuteRender(ctx context.Context, cfg *config.Config) (runner.Outcome, error) {
	source := cfg.Options.StrokesFile
	if source == "" {
		source = cfg.Options.SketchFile
	}
	if source == "" {
		return runner.Outcome{}, fmt.Errorf("スケッチ（--strokes または --sketch）を指定してほしいのだ")
	}

	appCtx, err := SetupAppContext(ctx, cfg)
	if err != nil {
		return runner.Outcome{}, err
	}

	gen, err := builder.BuildGenerator(ctx, appCtx)
	if err != nil {
		return runner.Outcome{}, err
	}

	store, closeStore := openHistory(ctx, appCtx)
	defer closeStore()

	renderRunner := builder.BuildRenderRunner(gen, appCtx, store)
	out := renderRunner.Run(ctx, runner.Job{Source: source, Style: cfg.Options.Style})
	if out.Err != nil {
		return out, describe(out)
	}

	slog.Info("建築パースが完成したのだ！", "style", out.Result.StyleID, "path", out.Published.ImagePath)
	return out, nil
}

// ExecuteBatch は入力ディレクトリ内のスケッチをレート制限付きで並列生成するのだ。
// 個々の失敗は結果に残し、全体は最後まで実行するのだ。
func ExecuteBatch(ctx context.Context, cfg *config.Config) ([]runner.Outcome, error) {
	if cfg.Options.InputDir == "" {
		return nil, fmt.Errorf("入力ディレクトリ（--input-dir）を指定してほしいのだ")
	}
	appCtx, err := SetupAppContext(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jobs, err := runner.CollectJobs(ctx, runner.DirLister{}, cfg.Options.InputDir, cfg.Options.Style)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		slog.Warn("生成対象のスケッチが見つからなかったのだ", "input_dir", cfg.Options.InputDir)
		return nil, nil
	}

	gen, err := builder.BuildGenerator(ctx, appCtx)
	if err != nil {
		return nil, err
	}
	var limited generator.Generator = runner.NewRateLimitedGenerator(gen, cfg.Options.RateInterval, config.DefaultRateBurst)

	store, closeStore := openHistory(ctx, appCtx)
	defer closeStore()

	renderRunner := builder.BuildRenderRunner(limited, appCtx, store)
	outcomes, err := runner.NewBatchRunner(renderRunner, cfg.Options.Parallel).Run(ctx, jobs)

	succeeded, failed := runner.Summarize(outcomes)
	slog.Info("バッチ生成が終わったのだ", "succeeded", succeeded, "failed", failed)
	return outcomes, err
}

// ExecuteTextToImage はプロンプトだけから画像を生成して保存するのだ。
func ExecuteTextToImage(ctx context.Context, cfg *config.Config, prompt, negativePrompt string) (runner.Outcome, error) {
	if _, err := domain.NewTextToImageRequest(prompt, negativePrompt); err != nil {
		return runner.Outcome{}, fmt.Errorf("プロンプト（--prompt）を指定してほしいのだ: %w", err)
	}

	appCtx, err := SetupAppContext(ctx, cfg)
	if err != nil {
		return runner.Outcome{}, err
	}

	gen, err := builder.BuildTextGenerator(ctx, appCtx)
	if err != nil {
		return runner.Outcome{}, err
	}

	store, closeStore := openHistory(ctx, appCtx)
	defer closeStore()

	out := builder.BuildTextRunner(gen, appCtx, store).Run(ctx, prompt, negativePrompt)
	if out.Err != nil {
		return out, out.Err
	}

	slog.Info("画像が完成したのだ！", "path", out.Published.ImagePath)
	return out, nil
}

// SetupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
func SetupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := generator.NewAPIHTTPClient(timeout)

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	remote := api.NewClient(cfg.APIURL, httpClient, nil)
	catalog, err := builder.LoadStyles(ctx, cfg, reader, remote)
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, reader, writer, catalog)
	return &appCtx, nil
}

// openHistory は履歴ストアを開くのだ。開けなくても生成は続けるのだ。
func openHistory(ctx context.Context, appCtx *builder.AppContext) (runner.HistoryRecorder, func()) {
	store, err := builder.OpenHistory(ctx, appCtx)
	if err != nil {
		slog.WarnContext(ctx, "生成履歴なしで続行するのだ", "error", err)
		return nil, func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			slog.WarnContext(ctx, "生成履歴のクローズに失敗したのだ", "error", err)
		}
	}
}

// describe は失敗した Outcome を利用者向けのエラーにするのだ。
func describe(out runner.Outcome) error {
	if out.Message != "" {
		return &RenderError{Message: out.Message, Err: out.Err}
	}
	return out.Err
}

// RenderError はローカライズ済みのメッセージと原因を持つ生成失敗なのだ。
type RenderError struct {
	Message string
	Err     error
}

func (e *RenderError) Error() string { return e.Message }

func (e *RenderError) Unwrap() error { return e.Err }

// AsRenderError は err に含まれる RenderError を取り出すのだ。
func AsRenderError(err error) (*RenderError, bool) {
	var re *RenderError
	ok := errors.As(err, &re)
	return re, ok
}
