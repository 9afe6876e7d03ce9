package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// CreateProjectRequest はプロジェクト作成の入力です。
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Style       string `json:"style"`
}

// UpdateProjectRequest は部分更新の入力で、nil のフィールドは送信しません。
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Style       *string `json:"style,omitempty"`
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	err := c.doJSON(ctx, http.MethodGet, "/projects", nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var out domain.Project
	if err := c.doJSON(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProject(ctx context.Context, in CreateProjectRequest) (*domain.Project, error) {
	var out domain.Project
	if err := c.doJSON(ctx, http.MethodPost, "/projects", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, in UpdateProjectRequest) (*domain.Project, error) {
	var out domain.Project
	if err := c.doJSON(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

// AddGenerationToProject は生成結果をプロジェクトに紐付けます。
func (c *Client) AddGenerationToProject(ctx context.Context, projectID, generationID string) (*domain.Project, error) {
	var out domain.Project
	path := "/projects/" + url.PathEscape(projectID) + "/generations/" + url.PathEscape(generationID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
