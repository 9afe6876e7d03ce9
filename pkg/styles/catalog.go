// Package styles は建築様式カタログと、その選択状態を管理します。
package styles

import (
	"context"
	"fmt"
	"io"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// DefaultCatalog は組み込みの様式カタログを返します。呼び出しごとに新しいスライスです。
func DefaultCatalog() domain.StyleCatalog {
	return domain.StyleCatalog{
		{ID: "Mughal", Name: "Mughal Architecture", Description: "Characterized by domes, arches, and intricate geometric patterns", ImageURL: "/styles/mughal.jpg"},
		{ID: "Dravidian", Name: "Dravidian Architecture", Description: "Known for pyramidal towers, elaborate sculptures, and stone carvings", ImageURL: "/styles/dravidian.jpg"},
		{ID: "Rajput", Name: "Rajput Architecture", Description: "Features massive forts, ornate palaces, and detailed jharokhas", ImageURL: "/styles/rajput.jpg"},
		{ID: "Bengal", Name: "Bengal Architecture", Description: "Distinctive curved roofs, terracotta temples, and Islamic influences", ImageURL: "/styles/bengal.jpg"},
		{ID: "Modern", Name: "Modern Architecture", Description: "Clean lines, open plans, and minimal ornamentation", ImageURL: "/styles/modern.jpg"},
		{ID: "Contemporary", Name: "Contemporary Architecture", Description: "Current design language with glass, steel, and sustainable materials", ImageURL: "/styles/contemporary.jpg"},
		{ID: "Indo-Saracenic", Name: "Indo-Saracenic Architecture", Description: "Fusion of Indian, Islamic, and European Gothic styles featuring domes, spires, and arches", ImageURL: "/styles/indo-saracenic.jpg"},
		{ID: "Buddhist", Name: "Buddhist Architecture", Description: "Stupas, chaityas, and viharas with hemispherical domes and carved gateways", ImageURL: "/styles/buddhist.jpg"},
		{ID: "Temple", Name: "Temple Architecture", Description: "Intricate carvings and sculptures with towering shikharas", ImageURL: "/styles/temple.jpg"},
		{ID: "Colonial", Name: "Colonial Architecture", Description: "European-influenced facades, columns, and verandas adapted to the Indian climate", ImageURL: "/styles/colonial.jpg"},
	}
}

// LoadCatalog は URI（ローカルパスまたは gs://）から JSON 形式の様式カタログを読み込みます。
func LoadCatalog(ctx context.Context, reader remoteio.InputReader, uri string) (domain.StyleCatalog, error) {
	rc, err := reader.Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("様式カタログ '%s' を開けませんでした: %w", uri, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("様式カタログ '%s' の読み込みに失敗しました: %w", uri, err)
	}
	return domain.ParseStyles(data)
}
