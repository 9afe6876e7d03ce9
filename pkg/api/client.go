// Package api は認証、プロジェクト、デザインの REST API クライアントです。
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL はローカル開発用の API ベースURLです。
	DefaultBaseURL = "http://localhost:8000/api/v1"
	// DefaultTimeout は1リクエストあたりのタイムアウトです。
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 4 << 10
)

// Doer は HTTP リクエストを実行します。*http.Client が満たします。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client はセッションのトークンを付与して API を呼び出します。
type Client struct {
	baseURL string
	doer    Doer
	session *Session
}

// NewClient は Client を作成します。doer が nil の場合はタイムアウト付きの *http.Client を使います。
func NewClient(baseURL string, doer Doer, session *Session) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if doer == nil {
		doer = &http.Client{Timeout: DefaultTimeout}
	}
	if session == nil {
		session = NewSession("")
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		doer:    doer,
		session: session,
	}
}

// Session はクライアントが使っているセッションを返します。
func (c *Client) Session() *Session {
	return c.session
}

// doJSON は in を JSON で送り、2xx 応答を out にデコードします。in や out が nil なら省略します。
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s の応答のデコードに失敗しました: %w", method, path, err)
	}
	return nil
}

// do は in を JSON で送り、2xx の応答ボディを返します。
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	if in == nil {
		return c.send(ctx, method, path, nil, "")
	}
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("リクエストのエンコードに失敗しました: %w", err)
	}
	return c.send(ctx, method, path, bytes.NewReader(data), "application/json")
}

// send はリクエストを送り、2xx の応答ボディを返します。
// 401 を受けた場合はセッションを破棄します。
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s の送信に失敗しました: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusUnauthorized {
			slog.WarnContext(ctx, "認証が無効になったためセッションを破棄します", "path", path)
			c.session.Clear()
		}
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s の応答の読み込みに失敗しました: %w", method, path, err)
	}
	return data, nil
}
