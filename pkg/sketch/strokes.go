package sketch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// LoadStrokes はJSON配列で記録されたストロークを読み込みます。
// tool が省略されたストロークはブラシとして扱います。
func LoadStrokes(r io.Reader) (domain.Polylines, error) {
	var lines domain.Polylines
	if err := json.NewDecoder(r).Decode(&lines); err != nil {
		return nil, fmt.Errorf("ストロークJSONのデコードに失敗しました: %w", err)
	}
	for i := range lines {
		if lines[i].Tool == "" {
			lines[i].Tool = domain.ToolBrush
		}
		if lines[i].Tool != domain.ToolBrush {
			return nil, fmt.Errorf("ストローク %d: 未対応のツール '%s' です", i, lines[i].Tool)
		}
	}
	return lines, nil
}

// SaveStrokes はストロークを LoadStrokes で読み戻せる形式で書き出します。
func SaveStrokes(w io.Writer, lines domain.Polylines) error {
	if lines == nil {
		lines = domain.Polylines{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lines); err != nil {
		return fmt.Errorf("ストロークJSONのエンコードに失敗しました: %w", err)
	}
	return nil
}

// Replay はストロークを down / move / up のポインタイベント列としてキャンバスに流し込みます。
// 点を持たないストロークは読み飛ばします。
func Replay(c *Canvas, lines domain.Polylines) {
	for _, line := range lines {
		if len(line.Points) == 0 {
			continue
		}
		c.PointerDown(line.Points[0].X, line.Points[0].Y)
		for _, p := range line.Points[1:] {
			c.PointerMove(p.X, p.Y)
		}
		c.PointerUp()
	}
}
