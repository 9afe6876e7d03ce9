package submission

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// --- Mocks ---

type mockGenerator struct {
	calls atomic.Int32

	mu      sync.Mutex
	lastReq domain.GenerationRequest
	started chan struct{}
	release chan struct{}
	result  *domain.GenerationResult
	err     error
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastReq = req
	m.mu.Unlock()

	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.release != nil {
		<-m.release
	}
	return m.result, m.err
}

// keyTranslator はキーをそのまま返すのだ。
type keyTranslator struct{}

func (keyTranslator) T(key string) string { return "msg:" + key }

type stateRecorder struct {
	mu     sync.Mutex
	states []State
}

func (r *stateRecorder) record(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s.State)
}

func (r *stateRecorder) all() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}
