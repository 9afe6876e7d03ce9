package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Style は生成のパラメータとなる建築様式の定義です。
type Style struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"` // 参照画像（サムネイル）の場所
}

// StyleCatalog は表示順を保持した様式の一覧です。
type StyleCatalog []Style

// Find は ID（大文字小文字は区別しない）で様式を探します。
func (c StyleCatalog) Find(id string) *Style {
	if id == "" {
		return nil
	}
	for _, s := range c {
		if s.ID == id || strings.EqualFold(s.ID, id) {
			res := s
			return &res
		}
	}
	return nil
}

// IDs はカタログ内の ID を表示順で返します。
func (c StyleCatalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for _, s := range c {
		ids = append(ids, s.ID)
	}
	return ids
}

// ParseStyles はJSONバイト列から様式カタログをパースします。
// ID が空、または重複しているエントリはエラーとして扱います。
func ParseStyles(stylesJSON []byte) (StyleCatalog, error) {
	var catalog StyleCatalog
	if err := json.Unmarshal(stylesJSON, &catalog); err != nil {
		return nil, fmt.Errorf("様式カタログのJSONパースに失敗しました: %w", err)
	}

	seen := make(map[string]struct{}, len(catalog))
	for i, s := range catalog {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("様式カタログの %d 番目のエントリに id がありません", i+1)
		}
		key := strings.ToLower(s.ID)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("様式 ID '%s' が重複しています", s.ID)
		}
		seen[key] = struct{}{}
	}
	return catalog, nil
}
