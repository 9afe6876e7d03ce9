package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

const (
	stylesPath = "/architectural-styles"

	// MaxStylePageSize はバックエンドが受け付ける limit の上限です。
	MaxStylePageSize = 100
)

// StyleQuery は様式一覧のページングと地域の絞り込みです。ゼロ値はサーバーの既定に従います。
type StyleQuery struct {
	Skip   int
	Limit  int
	Region string
}

func (q StyleQuery) values() url.Values {
	v := url.Values{}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Region != "" {
		v.Set("region", q.Region)
	}
	return v
}

// StyleInput は様式の作成内容です。
type StyleInput struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Region      string            `json:"region"`
	Features    map[string]string `json:"features"`
	Materials   []string          `json:"materials"`
	Examples    []string          `json:"examples"`
	ImageURLs   []string          `json:"image_urls"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
}

// StyleUpdate は指定したフィールドだけを更新します。
type StyleUpdate struct {
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	Region      *string           `json:"region,omitempty"`
	Features    map[string]string `json:"features,omitempty"`
	Materials   []string          `json:"materials,omitempty"`
	Examples    []string          `json:"examples,omitempty"`
	ImageURLs   []string          `json:"image_urls,omitempty"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
}

func stylePath(id int) string {
	return stylesPath + "/" + strconv.Itoa(id)
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// ListStyles は様式を一覧取得します。
func (c *Client) ListStyles(ctx context.Context, q StyleQuery) ([]domain.ArchitecturalStyle, error) {
	var out []domain.ArchitecturalStyle
	err := c.doJSON(ctx, http.MethodGet, withQuery(stylesPath+"/", q.values()), nil, &out)
	return out, err
}

// GetStyle は様式を1件取得します。
func (c *Client) GetStyle(ctx context.Context, id int) (*domain.ArchitecturalStyle, error) {
	var out domain.ArchitecturalStyle
	if err := c.doJSON(ctx, http.MethodGet, stylePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStyle は様式を作成します。
func (c *Client) CreateStyle(ctx context.Context, in StyleInput) (*domain.ArchitecturalStyle, error) {
	var out domain.ArchitecturalStyle
	if err := c.doJSON(ctx, http.MethodPost, stylesPath+"/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStyle は様式を部分更新します。
func (c *Client) UpdateStyle(ctx context.Context, id int, in StyleUpdate) (*domain.ArchitecturalStyle, error) {
	var out domain.ArchitecturalStyle
	if err := c.doJSON(ctx, http.MethodPut, stylePath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStyle は様式を削除します。
func (c *Client) DeleteStyle(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, stylePath(id), nil, nil)
}

// SearchStyles は名前と説明から様式を検索します。
func (c *Client) SearchStyles(ctx context.Context, query string, skip, limit int) ([]domain.ArchitecturalStyle, error) {
	v := StyleQuery{Skip: skip, Limit: limit}.values()
	v.Set("query", query)
	var out []domain.ArchitecturalStyle
	err := c.doJSON(ctx, http.MethodGet, withQuery(stylesPath+"/search/", v), nil, &out)
	return out, err
}

// StylesByRegion は地域に属する様式をすべて取得します。
func (c *Client) StylesByRegion(ctx context.Context, region string) ([]domain.ArchitecturalStyle, error) {
	var out []domain.ArchitecturalStyle
	err := c.doJSON(ctx, http.MethodGet, stylesPath+"/region/"+url.PathEscape(region), nil, &out)
	return out, err
}
