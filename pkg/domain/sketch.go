package domain

// ToolBrush は現状キャンバスが唯一サポートする描画ツールです。
const ToolBrush = "brush"

// Point はキャンバス上の2次元座標です。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline は1回のペンストローク（ポインタが押されてから離されるまで）を表します。
type Polyline struct {
	Tool   string  `json:"tool"`
	Points []Point `json:"points"`
}

// Clone は Points スライスを含めたディープコピーを返します。
func (p Polyline) Clone() Polyline {
	pts := make([]Point, len(p.Points))
	copy(pts, p.Points)
	return Polyline{Tool: p.Tool, Points: pts}
}

// Polylines はキャンバスの描画バッファです。
type Polylines []Polyline

// Clone は各ストロークをコピーした新しいスライスを返します。
func (ps Polylines) Clone() Polylines {
	if ps == nil {
		return nil
	}
	out := make(Polylines, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// PointCount は全ストロークの頂点数の合計です。
func (ps Polylines) PointCount() int {
	n := 0
	for _, p := range ps {
		n += len(p.Points)
	}
	return n
}
