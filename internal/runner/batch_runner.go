package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-archviz-kit/pkg/domain"
	"github.com/shouni/go-archviz-kit/pkg/generator"
)

// SourceLister はディレクトリ内の入力を列挙するのだ。*DirLister が満たすのだ。
type SourceLister interface {
	List(ctx context.Context, uri string, fn func(string) error) error
}

// CollectJobs は inputDir 内のスケッチを名前順に並べて Job にするのだ。
func CollectJobs(ctx context.Context, lister SourceLister, inputDir, style string) ([]Job, error) {
	var sources []string
	err := lister.List(ctx, inputDir, func(uri string) error {
		if IsSketchSource(uri) {
			sources = append(sources, uri)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("入力ディレクトリ '%s' の列挙に失敗したのだ: %w", inputDir, err)
	}
	sort.Strings(sources)

	jobs := make([]Job, len(sources))
	for i, src := range sources {
		jobs[i] = Job{Index: i + 1, Source: src, Style: style}
	}
	return jobs, nil
}

// RateLimitedGenerator は実際にエンドポイントを呼ぶ直前だけレートリミットで待つのだ。
// 検証エラーで終わる送信はトークンを消費しないのだ。
type RateLimitedGenerator struct {
	next    generator.Generator
	limiter *rate.Limiter
}

// NewRateLimitedGenerator は interval ごとに1回（最大 burst 回まで連続）に呼び出しを絞るのだ。
func NewRateLimitedGenerator(next generator.Generator, interval time.Duration, burst int) *RateLimitedGenerator {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedGenerator{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (g *RateLimitedGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return g.next.Generate(ctx, req)
}

// JobRunner は1件の Job を実行するのだ。*RenderRunner が満たすのだ。
type JobRunner interface {
	Run(ctx context.Context, job Job) Outcome
}

// BatchRunner は複数の Job を並列に実行するのだ。
type BatchRunner struct {
	runner   JobRunner
	parallel int
}

// NewBatchRunner は同時実行数 parallel の BatchRunner を作るのだ。
func NewBatchRunner(runner JobRunner, parallel int) *BatchRunner {
	if parallel < 1 {
		parallel = 1
	}
	return &BatchRunner{runner: runner, parallel: parallel}
}

// Run は全 Job を実行して Job の順で結果を返すのだ。
// 個々の失敗は Outcome に残して続行し、コンテキストのキャンセルだけがエラーになるのだ。
func (b *BatchRunner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.parallel)
	slog.Info("バッチ生成を開始するのだ", "count", len(jobs), "parallel", b.parallel)

	for i, job := range jobs {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			out := b.runner.Run(egCtx, job)
			outcomes[i] = out
			if out.Err != nil {
				slog.Warn("ジョブが失敗したのだ", "index", job.Index, "source", job.Source, "status", out.Status, "error", out.Err)
			} else {
				slog.Info("ジョブが完了したのだ", "index", job.Index, "output", out.Published.ImagePath)
			}
			return egCtx.Err()
		})
	}

	if err := eg.Wait(); err != nil {
		return outcomes, fmt.Errorf("バッチ生成が中断されたのだ: %w", err)
	}
	return outcomes, nil
}

// Summarize は成功件数と失敗件数を数えるのだ。
func Summarize(outcomes []Outcome) (succeeded, failed int) {
	for _, o := range outcomes {
		if o.Err == nil && o.Result != nil {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
