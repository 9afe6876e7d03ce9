package generator

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockDoer struct {
	calls       int
	req         *http.Request
	body        []byte
	contentType string

	status int
	resp   []byte
	err    error
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	m.req = req
	m.contentType = req.Header.Get("Content-Type")
	if req.Body != nil {
		m.body, _ = io.ReadAll(req.Body)
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewReader(m.resp)),
		Request:    req,
	}, nil
}

type mockModels struct {
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig

	resp *genai.GenerateContentResponse
	err  error
}

func (m *mockModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.model = model
	m.contents = contents
	m.config = config
	return m.resp, m.err
}
