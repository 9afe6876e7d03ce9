package styles

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/shouni/go-archviz-kit/pkg/api"
	"github.com/shouni/go-archviz-kit/pkg/domain"
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
	for name := range m.files {
		if err := fn(name); err != nil {
			return err
		}
	}
	return nil
}

type mockHTTPClient struct {
	mu    sync.Mutex
	data  map[string][]byte
	calls map[string]int
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[url]++
	data, ok := m.data[url]
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return data, nil
}

func (m *mockHTTPClient) callCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[url]
}

type mockStyleSource struct {
	pages   [][]domain.ArchitecturalStyle
	err     error
	queries []api.StyleQuery
}

func (m *mockStyleSource) ListStyles(ctx context.Context, q api.StyleQuery) ([]domain.ArchitecturalStyle, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, m.err
	}
	i := len(m.queries) - 1
	if i >= len(m.pages) {
		return nil, nil
	}
	return m.pages[i], nil
}
