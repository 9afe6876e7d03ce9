package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// ProcessSketch はスケッチ画像と様式をアップロードし、サーバー側での処理結果を返します。
func (c *Client) ProcessSketch(ctx context.Context, sketch []byte, mimeType, style string) (*domain.ProcessedSketch, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="sketch"; filename="sketch.png"`)
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(sketch); err != nil {
		return nil, err
	}
	if err := w.WriteField("style", style); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	data, err := c.send(ctx, http.MethodPost, "/sketches/process", &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var out domain.ProcessedSketch
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("POST /sketches/process の応答のデコードに失敗しました: %w", err)
	}
	return &out, nil
}

// GetSketch は処理済みスケッチを1件取得します。
func (c *Client) GetSketch(ctx context.Context, id string) (*domain.ProcessedSketch, error) {
	var out domain.ProcessedSketch
	if err := c.doJSON(ctx, http.MethodGet, "/sketches/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSketches は処理済みスケッチを一覧取得します。
func (c *Client) ListSketches(ctx context.Context) ([]domain.ProcessedSketch, error) {
	var out []domain.ProcessedSketch
	err := c.doJSON(ctx, http.MethodGet, "/sketches", nil, &out)
	return out, err
}

// DeleteSketch は処理済みスケッチを削除します。
func (c *Client) DeleteSketch(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/sketches/"+url.PathEscape(id), nil, nil)
}
