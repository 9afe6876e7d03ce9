// Package preview は生成結果を閲覧するためのローカル HTTP サーバーです。
package preview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/shouni/go-archviz-kit/pkg/history"
	"github.com/shouni/go-archviz-kit/pkg/styles"
)

const appName = "archviz preview"

// HistoryStore は生成履歴の参照元です。*history.Store が満たします。
type HistoryStore interface {
	List(ctx context.Context, limit int) ([]history.Record, error)
	Get(ctx context.Context, id string) (*history.Record, error)
}

// Opener は保存済みの画像を読み出します。remoteio.InputReader が満たします。
type Opener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Server は様式カタログと生成履歴を JSON で返し、生成画像を配信します。
type Server struct {
	app      *fiber.App
	selector *styles.Selector
	store    HistoryStore
	reader   Opener
}

// New はルーティング済みの Server を作成します。
func New(selector *styles.Selector, store HistoryStore, reader Opener) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName: appName,
		}),
		selector: selector,
		store:    store,
		reader:   reader,
	}

	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	s.app.Get("/health", s.health)
	s.app.Get("/styles", s.listStyles)
	s.app.Post("/styles/:id/select", s.selectStyle)
	s.app.Get("/renders", s.listRenders)
	s.app.Get("/renders/:id", s.getRender)
	s.app.Get("/renders/:id/image", s.getRenderImage)
	return s
}

// App はテストや埋め込み用に fiber アプリを返します。
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen は addr で待ち受けます。Shutdown されるまで戻りません。
func (s *Server) Listen(addr string) error {
	slog.Info("プレビューサーバーを起動します", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown は待ち受けを停止します。
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

func (s *Server) listStyles(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"selected": s.selector.Selected(),
		"styles":   s.selector.Entries(),
	})
}

func (s *Server) selectStyle(c fiber.Ctx) error {
	if err := s.selector.Select(c.Params("id")); err != nil {
		if errors.Is(err, styles.ErrUnknownStyle) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return err
	}
	return c.JSON(fiber.Map{"selected": s.selector.Selected()})
}

func (s *Server) listRenders(c fiber.Ctx) error {
	limit := history.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive integer"})
		}
		limit = n
	}

	records, err := s.store.List(c.Context(), limit)
	if err != nil {
		slog.Error("履歴の取得に失敗しました", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list renders"})
	}
	if records == nil {
		records = []history.Record{}
	}
	return c.JSON(records)
}

func (s *Server) getRender(c fiber.Ctx) error {
	rec, err := s.lookup(c)
	if err != nil || rec == nil {
		return err
	}
	return c.JSON(rec)
}

func (s *Server) getRenderImage(c fiber.Ctx) error {
	rec, err := s.lookup(c)
	if err != nil || rec == nil {
		return err
	}
	if rec.OutputPath == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "render has no image"})
	}

	rc, err := s.reader.Open(c.Context(), rec.OutputPath)
	if err != nil {
		slog.Error("生成画像を開けませんでした", "path", rec.OutputPath, "error", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "image not available"})
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read image"})
	}

	mimeType := rec.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}
	c.Set("Content-Type", mimeType)
	return c.Send(data)
}

// lookup は :id の履歴を返します。応答を書き込んだ場合は nil, nil を返します。
func (s *Server) lookup(c fiber.Ctx) (*history.Record, error) {
	rec, err := s.store.Get(c.Context(), c.Params("id"))
	if errors.Is(err, history.ErrNotFound) {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "render not found"})
	}
	if err != nil {
		slog.Error("履歴の取得に失敗しました", "id", c.Params("id"), "error", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load render"})
	}
	return rec, nil
}
