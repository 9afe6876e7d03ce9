package sketch

import (
	"bytes"
	"fmt"

	"github.com/gogpu/gg"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

const (
	// StrokeColor 等はキャンバスの固定ペン設定です。
	StrokeColor     = "#000000"
	StrokeWidth     = 5.0
	BackgroundColor = "#ffffff"
)

// Rasterize は白背景にストロークを描画し、PNG のバイト列を返します。
// ストロークが無い場合は真っ白な画像になります。
func Rasterize(width, height int, polylines domain.Polylines) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("キャンバスサイズが不正です: %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()

	dc.ClearWithColor(gg.White)
	dc.SetHexColor(StrokeColor)
	dc.SetLineWidth(StrokeWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for i, line := range polylines {
		if err := drawPolyline(dc, line); err != nil {
			return nil, fmt.Errorf("ストローク %d の描画に失敗しました: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("PNGエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPolyline(dc *gg.Context, line domain.Polyline) error {
	switch len(line.Points) {
	case 0:
		return nil
	case 1:
		// タップだけのストロークはペン幅の点として残す
		p := line.Points[0]
		dc.DrawCircle(p.X, p.Y, StrokeWidth/2)
		return dc.Fill()
	}

	dc.MoveTo(line.Points[0].X, line.Points[0].Y)
	for _, p := range line.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	return dc.Stroke()
}
