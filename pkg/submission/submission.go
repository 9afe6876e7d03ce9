// Package submission は様式選択とスケッチから生成リクエストを組み立てて送信する状態機械です。
package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shouni/go-archviz-kit/pkg/dataurl"
	"github.com/shouni/go-archviz-kit/pkg/domain"
	"github.com/shouni/go-archviz-kit/pkg/generator"
	"github.com/shouni/go-archviz-kit/pkg/i18n"
)

var (
	// ErrSubmissionPending は生成中に再送信しようとした場合のエラーです。
	ErrSubmissionPending = errors.New("submission already pending")
	// ErrClosed は Close 後の送信、または Close 後に完了した生成に対して返ります。
	ErrClosed = errors.New("submission closed")
)

// Translator はメッセージキーを表示文字列に変換します。*i18n.Localizer が満たします。
type Translator interface {
	T(key string) string
}

// Snapshot はある時点の送信状態です。
type Snapshot struct {
	State   State
	Attempt string // 直近の送信の相関 ID
	Error   string // ローカライズ済みのエラーメッセージ
	Result  *domain.GenerationResult
}

// ChangeFunc は状態遷移のたびに呼ばれます。
type ChangeFunc func(Snapshot)

// Submission は1つの生成ページに対応する送信状態を保持します。
// 同時に進行できる生成は1件だけです。
type Submission struct {
	gen      generator.Generator
	tr       Translator
	onChange ChangeFunc

	mu      sync.Mutex
	state   State
	attempt string
	errMsg  string
	result  *domain.GenerationResult
	closed  bool
}

// New は idle 状態の Submission を作成します。
func New(gen generator.Generator, tr Translator, onChange ChangeFunc) *Submission {
	return &Submission{
		gen:      gen,
		tr:       tr,
		onChange: onChange,
		state:    StateIdle,
	}
}

// Snapshot は現在の状態を返します。
func (s *Submission) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Submit は入力を検証し、有効なら生成エンドポイントを1回だけ呼び出します。
// 検証エラーの場合はネットワークアクセスを行いません。
// 生成中の呼び出しは何もせず ErrSubmissionPending を返します。
func (s *Submission) Submit(ctx context.Context, styleID, sketchDataURL string) (*domain.GenerationResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.state == StatePending || s.state == StateValidating {
		s.mu.Unlock()
		return nil, ErrSubmissionPending
	}
	attempt := uuid.NewString()
	s.attempt = attempt
	s.errMsg = ""
	s.state = StateValidating
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	logger := slog.With("attempt", attempt, "style", styleID)

	req, err := s.buildRequest(styleID, sketchDataURL)
	if err != nil {
		if errors.Is(err, domain.ErrStyleRequired) || errors.Is(err, domain.ErrSketchRequired) {
			logger.DebugContext(ctx, "入力検証に失敗しました", "error", err)
			s.finish(attempt, StateInvalid, validationKey(err), nil)
			return nil, err
		}
		logger.ErrorContext(ctx, "スケッチのデコードに失敗しました", "error", err)
		s.finish(attempt, StateFailed, i18n.KeyGeneration, nil)
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.state = StatePending
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	logger.InfoContext(ctx, "画像生成を開始します")
	result, err := s.gen.Generate(ctx, *req)
	if err != nil {
		logger.ErrorContext(ctx, "画像生成に失敗しました", "error", err)
		if !s.finish(attempt, StateFailed, i18n.KeyGeneration, nil) {
			return nil, ErrClosed
		}
		return nil, fmt.Errorf("画像生成に失敗しました: %w", err)
	}

	if !s.finish(attempt, StateSuccess, "", result) {
		logger.DebugContext(ctx, "Close 後に完了した生成結果を破棄します")
		return nil, ErrClosed
	}
	logger.InfoContext(ctx, "画像生成が完了しました", "result_id", result.ID)
	return result, nil
}

// NewAction はスケッチや様式の編集を受けて、完了状態を idle に戻します。
// 生成中は何もしません。
func (s *Submission) NewAction() {
	s.mu.Lock()
	if s.closed || !s.state.terminal() {
		s.mu.Unlock()
		return
	}
	s.state = StateIdle
	s.errMsg = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Close は以降の送信を拒否し、進行中の生成の完了を無視するようにします。
func (s *Submission) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.onChange = nil
}

func (s *Submission) buildRequest(styleID, sketchDataURL string) (*domain.GenerationRequest, error) {
	// 様式の欠落を先に判定するため、デコード前に空チェックを行う
	if styleID == "" {
		return nil, domain.ErrStyleRequired
	}
	if sketchDataURL == "" {
		return nil, domain.ErrSketchRequired
	}
	mimeType, data, err := dataurl.Decode(sketchDataURL)
	if err != nil {
		return nil, err
	}
	return domain.NewGenerationRequest(styleID, data, mimeType)
}

// finish は送信を終端状態にします。Close 済みなら何もせず false を返します。
// 失敗時は直前の成功結果を保持します。
func (s *Submission) finish(attempt string, state State, msgKey string, result *domain.GenerationResult) bool {
	s.mu.Lock()
	if s.closed || s.attempt != attempt {
		s.mu.Unlock()
		return false
	}
	s.state = state
	s.errMsg = ""
	if msgKey != "" {
		s.errMsg = s.tr.T(msgKey)
	}
	if result != nil {
		s.result = result
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

func (s *Submission) notify(snap Snapshot) {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func (s *Submission) snapshotLocked() Snapshot {
	return Snapshot{
		State:   s.state,
		Attempt: s.attempt,
		Error:   s.errMsg,
		Result:  s.result,
	}
}

func validationKey(err error) string {
	if errors.Is(err, domain.ErrStyleRequired) {
		return i18n.KeySelectStyle
	}
	return i18n.KeyDrawSketch
}
