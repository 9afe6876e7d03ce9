package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

func (c *Client) ListDesigns(ctx context.Context) ([]domain.Design, error) {
	var out []domain.Design
	err := c.doJSON(ctx, http.MethodGet, "/designs", nil, &out)
	return out, err
}

// DownloadDesign はデザイン画像のバイナリを取得します。
func (c *Client) DownloadDesign(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/designs/"+url.PathEscape(id)+"/download", nil)
}

// ShareDesign は共有用のトークンを発行し、その値を返します。
func (c *Client) ShareDesign(ctx context.Context, id string) (string, error) {
	var out struct {
		ShareURL string `json:"shareUrl"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/designs/"+url.PathEscape(id)+"/share", nil, &out); err != nil {
		return "", err
	}
	return out.ShareURL, nil
}
