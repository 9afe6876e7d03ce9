// Package history は生成の履歴を SQLite に記録します。
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// ステータス
const (
	StatusSuccess = "success"
	StatusFailed  = "error"
	StatusInvalid = "invalid"
)

// DefaultListLimit は List に 0 以下を渡した場合の件数です。
const DefaultListLimit = 50

// ErrNotFound は指定 ID の履歴が存在しない場合のエラーです。
var ErrNotFound = errors.New("history record not found")

const schema = `
CREATE TABLE IF NOT EXISTS generations (
    id                  TEXT PRIMARY KEY,
    style_id            TEXT NOT NULL,
    prompt              TEXT NOT NULL,
    num_inference_steps INTEGER NOT NULL,
    guidance_scale      REAL NOT NULL,
    strength            REAL NOT NULL,
    backend             TEXT NOT NULL,
    status              TEXT NOT NULL,
    error               TEXT NOT NULL DEFAULT '',
    sketch_path         TEXT NOT NULL DEFAULT '',
    output_path         TEXT NOT NULL DEFAULT '',
    mime_type           TEXT NOT NULL DEFAULT '',
    created_at          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations (created_at);
`

// Record は1回の送信の記録です。
type Record struct {
	ID         string                  `json:"id"`
	StyleID    string                  `json:"style_id"`
	Prompt     string                  `json:"prompt"`
	Params     domain.GenerationParams `json:"params"`
	Backend    string                  `json:"backend"`
	Status     string                  `json:"status"`
	Error      string                  `json:"error,omitempty"`
	SketchPath string                  `json:"sketch_path,omitempty"`
	OutputPath string                  `json:"output_path,omitempty"`
	MimeType   string                  `json:"mime_type,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

// Store は SQLite 上の履歴テーブルです。
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open は dbPath の SQLite を開いてスキーマを適用します。
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("履歴DBのディレクトリ作成に失敗しました: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("履歴DBのオープンに失敗しました: %w", err)
	}
	// SQLite は単一ライターなので接続を1本に絞る
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("履歴DBのマイグレーションに失敗しました: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close は DB を閉じます。
func (s *Store) Close() error {
	return s.db.Close()
}

// Record は履歴を1件追加します。ID と CreatedAt が空なら採番します。
func (s *Store) Record(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO generations (id, style_id, prompt, num_inference_steps, guidance_scale, strength,
                                 backend, status, error, sketch_path, output_path, mime_type, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		rec.ID, rec.StyleID, rec.Prompt,
		rec.Params.NumInferenceSteps, rec.Params.GuidanceScale, rec.Params.Strength,
		rec.Backend, rec.Status, rec.Error,
		rec.SketchPath, rec.OutputPath, rec.MimeType,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("履歴 '%s' の保存に失敗しました: %w", rec.ID, err)
	}
	return nil
}

// List は新しい順に最大 limit 件の履歴を返します。
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("履歴の取得に失敗しました: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Get は ID で履歴を取得します。
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

const selectColumns = `
        SELECT id, style_id, prompt, num_inference_steps, guidance_scale, strength,
               backend, status, error, sketch_path, output_path, mime_type, created_at
        FROM generations`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec       Record
		createdAt string
	)
	err := sc.Scan(
		&rec.ID, &rec.StyleID, &rec.Prompt,
		&rec.Params.NumInferenceSteps, &rec.Params.GuidanceScale, &rec.Params.Strength,
		&rec.Backend, &rec.Status, &rec.Error,
		&rec.SketchPath, &rec.OutputPath, &rec.MimeType,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("履歴 '%s' の日時が不正です: %w", rec.ID, err)
	}
	return &rec, nil
}
