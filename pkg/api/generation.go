package api

import (
	"context"
	"net/http"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// DesignRequest はプロンプトと様式からデザインを作る依頼です。
type DesignRequest struct {
	Prompt            string         `json:"prompt"`
	Style             string         `json:"style"`
	AdditionalDetails map[string]any `json:"additionalDetails,omitempty"`
}

// GenerateDesign はデザイン生成を依頼し、作成されたデザインの参照を返します。
// 呼び出しは1回だけで、失敗しても再送しません。
func (c *Client) GenerateDesign(ctx context.Context, in DesignRequest) (*domain.DesignGeneration, error) {
	var out domain.DesignGeneration
	if err := c.doJSON(ctx, http.MethodPost, "/generation/generate", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
