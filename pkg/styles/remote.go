package styles

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-archviz-kit/pkg/api"
	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// RemoteStyleSource は API 上の様式一覧を提供します。*api.Client が満たします。
type RemoteStyleSource interface {
	ListStyles(ctx context.Context, q api.StyleQuery) ([]domain.ArchitecturalStyle, error)
}

// FromArchitecturalStyles は API の様式をカタログに変換します。
// 名前が空のものは捨て、名前が重複（大文字小文字は区別しない）した場合は先勝ちです。
func FromArchitecturalStyles(list []domain.ArchitecturalStyle) domain.StyleCatalog {
	catalog := make(domain.StyleCatalog, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		style := domain.Style{ID: name, Name: name, Description: s.Description}
		if len(s.ImageURLs) > 0 {
			style.ImageURL = s.ImageURLs[0]
		}
		catalog = append(catalog, style)
	}
	return catalog
}

// LoadRemoteCatalog は API から様式をページ単位ですべて取得し、カタログにします。
// 1件も取れなかった場合はエラーです。
func LoadRemoteCatalog(ctx context.Context, src RemoteStyleSource) (domain.StyleCatalog, error) {
	var all []domain.ArchitecturalStyle
	for skip := 0; ; skip += api.MaxStylePageSize {
		page, err := src.ListStyles(ctx, api.StyleQuery{Skip: skip, Limit: api.MaxStylePageSize})
		if err != nil {
			return nil, fmt.Errorf("様式一覧の取得に失敗しました (skip=%d): %w", skip, err)
		}
		all = append(all, page...)
		if len(page) < api.MaxStylePageSize {
			break
		}
	}

	catalog := FromArchitecturalStyles(all)
	if len(catalog) == 0 {
		return nil, fmt.Errorf("API に利用できる様式がありません")
	}
	slog.DebugContext(ctx, "API から様式カタログを読み込みました", "count", len(catalog))
	return catalog, nil
}
