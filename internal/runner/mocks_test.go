package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/shouni/go-archviz-kit/pkg/domain"
	"github.com/shouni/go-archviz-kit/pkg/history"
	"github.com/shouni/go-archviz-kit/pkg/publisher"
)

// --- Mocks ---

type mockReader struct {
	files map[string][]byte
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	data, ok := m.files[uri]
	if !ok {
		return nil, errors.New("not found: " + uri)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	for _, name := range names {
		if err := fn(name); err != nil {
			return err
		}
	}
	return nil
}

type mockGenerator struct {
	calls atomic.Int32
	err   error
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.GenerationResult{
		ID:       "gen-" + req.StyleID,
		StyleID:  req.StyleID,
		Prompt:   req.Prompt,
		Params:   req.Params,
		Data:     []byte("rendered"),
		MimeType: "image/png",
	}, nil
}

func (m *mockGenerator) TextToImage(ctx context.Context, req domain.TextToImageRequest) (*domain.GenerationResult, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.GenerationResult{
		ID:       "txt-1",
		Prompt:   req.Prompt,
		Params:   req.Params,
		Data:     []byte("rendered"),
		MimeType: "image/png",
	}, nil
}

type mockPublisher struct {
	mu    sync.Mutex
	calls []publisher.Options
}

func (m *mockPublisher) Publish(ctx context.Context, result *domain.GenerationResult, sketch []byte, opts publisher.Options) (publisher.PublishResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, opts)
	return publisher.PublishResult{ImagePath: "out/render.png", SketchPath: "out/sketch.png"}, nil
}

type mockRecorder struct {
	mu      sync.Mutex
	records []history.Record
}

func (m *mockRecorder) Record(ctx context.Context, rec *history.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

type keyTranslator struct{}

func (keyTranslator) T(key string) string { return key }
