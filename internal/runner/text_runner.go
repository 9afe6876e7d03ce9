package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-archviz-kit/pkg/domain"
	"github.com/shouni/go-archviz-kit/pkg/generator"
	"github.com/shouni/go-archviz-kit/pkg/history"
	"github.com/shouni/go-archviz-kit/pkg/publisher"
)

// TextRunner はプロンプトだけから画像を生成し、保存と履歴記録まで行うのだ。
type TextRunner struct {
	gen       generator.TextGenerator
	publisher Publisher
	recorder  HistoryRecorder
	backend   string
	outputDir string
}

// NewTextRunner は TextRunner を作成するのだ。recorder が nil なら履歴は記録しないのだ。
func NewTextRunner(gen generator.TextGenerator, pub Publisher, recorder HistoryRecorder, backend, outputDir string) *TextRunner {
	return &TextRunner{
		gen:       gen,
		publisher: pub,
		recorder:  recorder,
		backend:   backend,
		outputDir: outputDir,
	}
}

// Run はプロンプトを検証してから1回だけ生成するのだ。検証に失敗した場合は送信しないのだ。
func (r *TextRunner) Run(ctx context.Context, prompt, negativePrompt string) Outcome {
	out := Outcome{Status: history.StatusFailed}

	req, err := domain.NewTextToImageRequest(prompt, negativePrompt)
	if err != nil {
		out.Status = history.StatusInvalid
		out.Err = err
		return out
	}

	out.Result, out.Err = r.gen.TextToImage(ctx, *req)
	if out.Err == nil {
		out.Status = history.StatusSuccess
		out.Published, err = r.publisher.Publish(ctx, out.Result, nil, publisher.Options{OutputDir: r.outputDir})
		if err != nil {
			out.Status = history.StatusFailed
			out.Err = fmt.Errorf("生成結果の保存に失敗したのだ: %w", err)
		}
	}

	r.record(ctx, req, out)
	return out
}

func (r *TextRunner) record(ctx context.Context, req *domain.TextToImageRequest, out Outcome) {
	if r.recorder == nil {
		return
	}
	rec := &history.Record{
		Prompt:     req.Prompt,
		Params:     req.Params,
		Backend:    r.backend,
		Status:     out.Status,
		OutputPath: out.Published.ImagePath,
	}
	if out.Result != nil {
		rec.ID = out.Result.ID
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
