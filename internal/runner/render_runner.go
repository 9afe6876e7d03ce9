package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-archviz-kit/pkg/dataurl"
	"github.com/shouni/go-archviz-kit/pkg/domain"
	"github.com/shouni/go-archviz-kit/pkg/generator"
	"github.com/shouni/go-archviz-kit/pkg/history"
	"github.com/shouni/go-archviz-kit/pkg/publisher"
	"github.com/shouni/go-archviz-kit/pkg/sketch"
	"github.com/shouni/go-archviz-kit/pkg/styles"
	"github.com/shouni/go-archviz-kit/pkg/submission"
)

// Job は1枚分の生成指示なのだ。
type Job struct {
	Index  int    // バッチ内の連番（1始まり）。単発実行では 0 なのだ
	Source string // ストロークJSON またはスケッチ画像の場所
	Style  string
}

// Outcome は1件の実行結果なのだ。
type Outcome struct {
	Job       Job
	Status    string // history.Status* のいずれか
	Message   string // ローカライズ済みのエラーメッセージ
	Result    *domain.GenerationResult
	Published publisher.PublishResult
	Err       error
}

// Publisher は生成結果を保存するのだ。
type Publisher interface {
	Publish(ctx context.Context, result *domain.GenerationResult, sketch []byte, opts publisher.Options) (publisher.PublishResult, error)
}

// HistoryRecorder は実行結果を記録するのだ。*history.Store が満たすのだ。
type HistoryRecorder interface {
	Record(ctx context.Context, rec *history.Record) error
}

// RenderRunner はスケッチの読み込みから送信、保存、履歴記録までを1件ずつ実行するのだ。
type RenderRunner struct {
	gen       generator.Generator
	tr        submission.Translator
	reader    SketchReader
	publisher Publisher
	recorder  HistoryRecorder
	catalog   domain.StyleCatalog
	backend   string
	outputDir string
}

// NewRenderRunner は RenderRunner を作成するのだ。recorder が nil なら履歴は記録しないのだ。
func NewRenderRunner(
	gen generator.Generator,
	tr submission.Translator,
	reader SketchReader,
	pub Publisher,
	recorder HistoryRecorder,
	catalog domain.StyleCatalog,
	backend, outputDir string,
) *RenderRunner {
	return &RenderRunner{
		gen:       gen,
		tr:        tr,
		reader:    reader,
		publisher: pub,
		recorder:  recorder,
		catalog:   catalog,
		backend:   backend,
		outputDir: outputDir,
	}
}

// Run は1件の Job を実行するのだ。ジョブ単位の失敗は Outcome.Err に入るのだ。
func (r *RenderRunner) Run(ctx context.Context, job Job) Outcome {
	out := Outcome{Job: job, Status: history.StatusFailed}
	logger := slog.With("source", job.Source, "style", job.Style, "index", job.Index)

	// 1. 様式の選択（空なら未選択のまま送信して検証エラーにするのだ）
	selector := styles.NewSelector(r.catalog, nil)
	if job.Style != "" {
		if err := selector.Select(job.Style); err != nil {
			out.Err = err
			return out
		}
	}

	// 2. スケッチの読み込み
	sketchURL, err := LoadSketch(ctx, r.reader, job.Source, sketch.DefaultWidth, sketch.DefaultHeight)
	if err != nil {
		out.Err = err
		return out
	}

	// 3. 送信（1件ごとに独立した送信状態を使うのだ）
	sub := submission.New(r.gen, r.tr, func(s submission.Snapshot) {
		logger.Debug("送信状態が変化したのだ", "state", s.State.String(), "attempt", s.Attempt)
	})
	defer sub.Close()

	result, err := sub.Submit(ctx, selector.Selected(), sketchURL)
	snap := sub.Snapshot()
	out.Message = snap.Error
	out.Result = result
	out.Err = err

	switch snap.State {
	case submission.StateInvalid:
		out.Status = history.StatusInvalid
	case submission.StateSuccess:
		out.Status = history.StatusSuccess
	}

	// 4. 保存
	if out.Status == history.StatusSuccess {
		_, sketchPNG, _ := dataurl.Decode(sketchURL)
		out.Published, err = r.publisher.Publish(ctx, result, sketchPNG, publisher.Options{
			OutputDir: r.outputDir,
			Index:     job.Index,
		})
		if err != nil {
			out.Status = history.StatusFailed
			out.Err = fmt.Errorf("生成結果の保存に失敗したのだ: %w", err)
		}
	}

	r.record(ctx, selector.Selected(), out)
	return out
}

func (r *RenderRunner) record(ctx context.Context, styleID string, out Outcome) {
	if r.recorder == nil {
		return
	}
	rec := &history.Record{
		StyleID:    styleID,
		Backend:    r.backend,
		Status:     out.Status,
		SketchPath: out.Published.SketchPath,
		OutputPath: out.Published.ImagePath,
	}
	if styleID != "" {
		rec.Prompt = domain.BuildPrompt(styleID)
		rec.Params = domain.DefaultGenerationParams()
	}
	if out.Result != nil {
		rec.ID = out.Result.ID
		rec.Prompt = out.Result.Prompt
		rec.Params = out.Result.Params
		rec.MimeType = out.Result.MimeType
		rec.CreatedAt = out.Result.CreatedAt
	}
	if out.Err != nil {
		rec.Error = out.Err.Error()
	}
	if err := r.recorder.Record(ctx, rec); err != nil && !errors.Is(err, context.Canceled) {
		slog.WarnContext(ctx, "履歴の記録に失敗したのだ", "error", err)
	}
}
