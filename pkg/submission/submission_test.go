package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-archviz-kit/pkg/dataurl"
	"github.com/shouni/go-archviz-kit/pkg/domain"
	"github.com/shouni/go-archviz-kit/pkg/i18n"
)

var (
	sketchBytes = []byte("\x89PNG\r\n\x1a\nsketch")
	sketchURL   = dataurl.Encode("image/png", sketchBytes)
)

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		style   string
		sketch  string
		wantErr error
		wantMsg string
	}{
		{"様式もスケッチも無い場合は様式が先に報告されるのだ", "", "", domain.ErrStyleRequired, "msg:" + i18n.KeySelectStyle},
		{"様式が無い", "", sketchURL, domain.ErrStyleRequired, "msg:" + i18n.KeySelectStyle},
		{"スケッチが無い", "Mughal", "", domain.ErrSketchRequired, "msg:" + i18n.KeyDrawSketch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{}
			rec := &stateRecorder{}
			s := New(gen, keyTranslator{}, rec.record)

			res, err := s.Submit(context.Background(), tt.style, tt.sketch)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
			assert.Zero(t, gen.calls.Load(), "検証エラーではネットワークを呼ばないのだ")

			snap := s.Snapshot()
			assert.Equal(t, StateInvalid, snap.State)
			assert.Equal(t, tt.wantMsg, snap.Error)
			assert.Equal(t, []State{StateValidating, StateInvalid}, rec.all())
		})
	}
}

func TestSubmit_Success(t *testing.T) {
	want := &domain.GenerationResult{ID: "r1", Data: []byte("img")}
	gen := &mockGenerator{result: want}
	rec := &stateRecorder{}
	s := New(gen, keyTranslator{}, rec.record)

	got, err := s.Submit(context.Background(), "Dravidian", sketchURL)
	require.NoError(t, err)
	assert.Same(t, want, got)

	assert.Equal(t, int32(1), gen.calls.Load())
	assert.Equal(t, sketchBytes, gen.lastReq.Sketch)
	assert.Equal(t, "image/png", gen.lastReq.MimeType)
	assert.Equal(t, "Dravidian style building, architectural visualization", gen.lastReq.Prompt)
	assert.Equal(t, domain.DefaultGenerationParams(), gen.lastReq.Params)

	snap := s.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Empty(t, snap.Error)
	assert.Same(t, want, snap.Result)
	assert.Equal(t, []State{StateValidating, StatePending, StateSuccess}, rec.all())
}

func TestSubmit_FailureKeepsPreviousResult(t *testing.T) {
	first := &domain.GenerationResult{ID: "first"}
	gen := &mockGenerator{result: first}
	s := New(gen, keyTranslator{}, nil)

	_, err := s.Submit(context.Background(), "Mughal", sketchURL)
	require.NoError(t, err)

	cause := errors.New("503 Service Unavailable")
	gen.result, gen.err = nil, cause
	_, err = s.Submit(context.Background(), "Mughal", sketchURL)
	assert.ErrorIs(t, err, cause)

	snap := s.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Equal(t, "msg:"+i18n.KeyGeneration, snap.Error)
	assert.Same(t, first, snap.Result)
	assert.Equal(t, int32(2), gen.calls.Load(), "自動リトライはしないのだ")
}

func TestSubmit_MalformedSketch(t *testing.T) {
	gen := &mockGenerator{}
	s := New(gen, keyTranslator{}, nil)

	_, err := s.Submit(context.Background(), "Mughal", "data:image/png;base64,@@@")
	assert.ErrorIs(t, err, dataurl.ErrMalformed)
	assert.Zero(t, gen.calls.Load())
	assert.Equal(t, StateFailed, s.Snapshot().State)
	assert.Equal(t, "msg:"+i18n.KeyGeneration, s.Snapshot().Error)
}

func TestSubmit_PendingIsSingleFlight(t *testing.T) {
	gen := &mockGenerator{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  &domain.GenerationResult{ID: "only"},
	}
	s := New(gen, keyTranslator{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "Mughal", sketchURL)
		done <- err
	}()
	<-gen.started

	t.Run("生成中の送信は何もしないのだ", func(t *testing.T) {
		res, err := s.Submit(context.Background(), "Temple", sketchURL)
		assert.ErrorIs(t, err, ErrSubmissionPending)
		assert.Nil(t, res)
		assert.Equal(t, StatePending, s.Snapshot().State)
	})

	t.Run("生成中の NewAction は無視されるのだ", func(t *testing.T) {
		s.NewAction()
		assert.Equal(t, StatePending, s.Snapshot().State)
	})

	close(gen.release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), gen.calls.Load())
	assert.Equal(t, StateSuccess, s.Snapshot().State)
}

func TestNewAction(t *testing.T) {
	s := New(&mockGenerator{}, keyTranslator{}, nil)

	_, _ = s.Submit(context.Background(), "", "")
	require.Equal(t, StateInvalid, s.Snapshot().State)

	s.NewAction()
	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Error)
}

func TestClose_IgnoresLateCompletion(t *testing.T) {
	gen := &mockGenerator{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  &domain.GenerationResult{ID: "late"},
	}
	var notified []State
	s := New(gen, keyTranslator{}, func(snap Snapshot) { notified = append(notified, snap.State) })

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "Mughal", sketchURL)
		done <- err
	}()
	<-gen.started

	s.Close()
	close(gen.release)

	assert.ErrorIs(t, <-done, ErrClosed)
	snap := s.Snapshot()
	assert.Equal(t, StatePending, snap.State)
	assert.Nil(t, snap.Result)
	assert.Equal(t, []State{StateValidating, StatePending}, notified)

	_, err := s.Submit(context.Background(), "Mughal", sketchURL)
	assert.ErrorIs(t, err, ErrClosed)
}
