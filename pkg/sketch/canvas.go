// Package sketch はポインタイベントからストロークを記録し、PNG データURLとして書き出すキャンバスを提供します。
package sketch

import (
	"log/slog"
	"sync"

	"github.com/shouni/go-archviz-kit/pkg/dataurl"
	"github.com/shouni/go-archviz-kit/pkg/domain"
)

const (
	DefaultWidth  = 768
	DefaultHeight = 768

	pngMimeType = "image/png"
)

// ExportFunc はストローク確定やクリアのたびに最新のエンコード結果を受け取ります。
// クリア時は空文字列が渡されます。
type ExportFunc func(dataURL string)

// Option は Canvas の生成オプションです。
type Option func(*Canvas)

// WithExportFunc はエクスポート時のコールバックを登録します。
func WithExportFunc(fn ExportFunc) Option {
	return func(c *Canvas) {
		c.onExport = fn
	}
}

// Canvas は固定サイズの描画面です。
// 確定したストロークは変更されず、進行中のストロークは常に末尾の1本だけです。
type Canvas struct {
	mu       sync.Mutex
	width    int
	height   int
	lines    domain.Polylines
	drawing  bool
	closed   bool
	onExport ExportFunc
}

// NewCanvas は指定サイズの空キャンバスを作成します。0 以下のサイズはデフォルト値になります。
func NewCanvas(width, height int, opts ...Option) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	c := &Canvas{width: width, height: height}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Size はキャンバスのピクセルサイズを返します。
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// OnExport はエクスポートコールバックを差し替えます。nil で解除します。
func (c *Canvas) OnExport(fn ExportFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.onExport = fn
}

// PointerDown は接触点から新しいストロークを開始します。
func (c *Canvas) PointerDown(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.lines = append(c.lines, domain.Polyline{
		Tool:   domain.ToolBrush,
		Points: []domain.Point{{X: x, Y: y}},
	})
	c.drawing = true
}

// PointerMove は描画中の場合のみ、進行中のストロークに座標を追加します。
func (c *Canvas) PointerMove(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.drawing {
		return
	}
	last := &c.lines[len(c.lines)-1]
	last.Points = append(last.Points, domain.Point{X: x, Y: y})
}

// PointerUp はストロークを確定し、キャンバス全体をエクスポートします。
func (c *Canvas) PointerUp() {
	c.finishStroke("up")
}

// PointerLeave はポインタが描画面の外に出た場合で、PointerUp と同じく確定します。
func (c *Canvas) PointerLeave() {
	c.finishStroke("leave")
}

func (c *Canvas) finishStroke(reason string) {
	c.mu.Lock()
	if c.closed || !c.drawing {
		c.mu.Unlock()
		return
	}
	c.drawing = false
	fn := c.onExport
	snapshot := c.lines.Clone()
	c.mu.Unlock()

	if fn == nil {
		return
	}
	encoded, err := c.encode(snapshot)
	if err != nil {
		slog.Error("スケッチのエクスポートに失敗しました", "reason", reason, "error", err)
		return
	}
	c.emit(fn, encoded)
}

// Clear は全ストロークを破棄し、空のエンコード結果を通知します。
func (c *Canvas) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.lines = nil
	c.drawing = false
	fn := c.onExport
	c.mu.Unlock()

	if fn != nil {
		c.emit(fn, "")
	}
}

// Export は現在のキャンバスを PNG データURLとして返します。
// 空のキャンバスは白一色の画像になります。
func (c *Canvas) Export() (string, error) {
	c.mu.Lock()
	snapshot := c.lines.Clone()
	c.mu.Unlock()
	return c.encode(snapshot)
}

// IsEmpty はストロークが1本も無いかどうかを返します。
func (c *Canvas) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Strokes は全ストロークのディープコピーを返します。
func (c *Canvas) Strokes() domain.Polylines {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines.Clone()
}

// Close は描画バッファとコールバックを解放します。以降のイベントは無視されます。
func (c *Canvas) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.drawing = false
	c.lines = nil
	c.onExport = nil
}

func (c *Canvas) encode(lines domain.Polylines) (string, error) {
	png, err := Rasterize(c.width, c.height, lines)
	if err != nil {
		return "", err
	}
	return dataurl.Encode(pngMimeType, png), nil
}

// emit はアンマウント済みであればコールバックを呼ばない。
func (c *Canvas) emit(fn ExportFunc, encoded string) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}
	fn(encoded)
}
