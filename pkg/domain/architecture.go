package domain

import "time"

// ArchitecturalStyle はバックエンドで管理される建築様式の詳細です。
// 生成画面の Style はこの一覧から組み立てられます。
type ArchitecturalStyle struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Region      string            `json:"region"`
	Features    map[string]string `json:"features"`
	Materials   []string          `json:"materials"`
	Examples    []string          `json:"examples"`
	ImageURLs   []string          `json:"image_urls"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProcessedSketch はサーバー側で処理されたスケッチと、そのレンダリング結果です。
type ProcessedSketch struct {
	ID          string    `json:"id"`
	OriginalURL string    `json:"originalUrl"`
	RenderedURL string    `json:"renderedUrl"`
	Style       string    `json:"style"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DesignGeneration はプロンプトから作られたデザインの参照です。
type DesignGeneration struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	Style     string    `json:"style"`
	CreatedAt time.Time `json:"createdAt"`
}
