package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-archviz-kit/pkg/history"
	"github.com/shouni/go-archviz-kit/pkg/styles"
)

type mockStore struct {
	records []history.Record
}

func (m *mockStore) List(ctx context.Context, limit int) ([]history.Record, error) {
	if limit < len(m.records) {
		return m.records[:limit], nil
	}
	return m.records, nil
}

func (m *mockStore) Get(ctx context.Context, id string) (*history.Record, error) {
	for _, r := range m.records {
		if r.ID == id {
			rec := r
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", history.ErrNotFound, id)
}

type mockOpener struct {
	files map[string][]byte
}

func (m *mockOpener) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	data, ok := m.files[uri]
	if !ok {
		return nil, errors.New("no such file")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func newTestServer() *Server {
	store := &mockStore{records: []history.Record{
		{ID: "r2", StyleID: "Temple", Status: history.StatusSuccess, OutputPath: "out/render_2.png", MimeType: "image/png"},
		{ID: "r1", StyleID: "Mughal", Status: history.StatusFailed, Error: "boom"},
	}}
	opener := &mockOpener{files: map[string][]byte{"out/render_2.png": []byte("png-data")}}
	return New(styles.NewSelector(styles.DefaultCatalog(), nil), store, opener)
}

func doRequest(t *testing.T, s *Server, method, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func TestServer_Health(t *testing.T) {
	resp, body := doRequest(t, newTestServer(), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"alive"}`, string(body))
}

func TestServer_Styles(t *testing.T) {
	s := newTestServer()

	resp, _ := doRequest(t, s, http.MethodPost, "/styles/temple/select")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, s, http.MethodGet, "/styles")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Selected string         `json:"selected"`
		Styles   []styles.Entry `json:"styles"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Temple", got.Selected)
	assert.Len(t, got.Styles, len(styles.DefaultCatalog()))
	for _, e := range got.Styles {
		assert.Equal(t, e.ID == "Temple", e.Active, e.ID)
	}

	t.Run("未知の様式は 404 なのだ", func(t *testing.T) {
		resp, _ := doRequest(t, s, http.MethodPost, "/styles/Gothic/select")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_Renders(t *testing.T) {
	s := newTestServer()

	t.Run("一覧", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodGet, "/renders?limit=1")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list []history.Record
		require.NoError(t, json.Unmarshal(body, &list))
		require.Len(t, list, 1)
		assert.Equal(t, "r2", list[0].ID)
	})

	t.Run("不正な limit は 400 なのだ", func(t *testing.T) {
		resp, _ := doRequest(t, s, http.MethodGet, "/renders?limit=abc")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("詳細", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodGet, "/renders/r1")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var rec history.Record
		require.NoError(t, json.Unmarshal(body, &rec))
		assert.Equal(t, "boom", rec.Error)
	})

	t.Run("画像が配信されるのだ", func(t *testing.T) {
		resp, body := doRequest(t, s, http.MethodGet, "/renders/r2/image")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.Equal(t, []byte("png-data"), body)
	})

	t.Run("画像の無い履歴は 404 なのだ", func(t *testing.T) {
		resp, _ := doRequest(t, s, http.MethodGet, "/renders/r1/image")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("存在しない履歴は 404 なのだ", func(t *testing.T) {
		resp, _ := doRequest(t, s, http.MethodGet, "/renders/zzz")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
