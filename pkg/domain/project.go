package domain

import "time"

// User は認証APIが返すユーザー情報です。
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"` // "user" または "admin"
}

// Project はバックエンドで管理される設計プロジェクトです。
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Style        string    `json:"style"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	UserID       string    `json:"userId"`
}

// Design はギャラリーに並ぶ生成済みデザインです。
type Design struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	Style     string    `json:"style"`
	CreatedAt time.Time `json:"createdAt"`
}
