package sketch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

func TestLoadStrokes(t *testing.T) {
	t.Run("tool 省略時はブラシになるのだ", func(t *testing.T) {
		lines, err := LoadStrokes(strings.NewReader(`[{"points":[{"x":1,"y":2},{"x":3,"y":4}]}]`))
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, domain.ToolBrush, lines[0].Tool)
	})

	t.Run("未対応のツールはエラーなのだ", func(t *testing.T) {
		_, err := LoadStrokes(strings.NewReader(`[{"tool":"eraser","points":[]}]`))
		assert.ErrorContains(t, err, "eraser")
	})

	t.Run("壊れたJSONはエラーなのだ", func(t *testing.T) {
		_, err := LoadStrokes(strings.NewReader(`{`))
		assert.Error(t, err)
	})
}

func TestSaveStrokes_RoundTrip(t *testing.T) {
	src := domain.Polylines{{Tool: domain.ToolBrush, Points: []domain.Point{{X: 1.5, Y: 2}}}}

	var buf bytes.Buffer
	require.NoError(t, SaveStrokes(&buf, src))

	got, err := LoadStrokes(&buf)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestReplay(t *testing.T) {
	var exports int
	c := NewCanvas(64, 64, WithExportFunc(func(string) { exports++ }))

	Replay(c, domain.Polylines{
		{Points: []domain.Point{{X: 1, Y: 1}, {X: 10, Y: 10}}},
		{Points: nil},
		{Points: []domain.Point{{X: 20, Y: 20}}},
	})

	strokes := c.Strokes()
	require.Len(t, strokes, 2)
	assert.Len(t, strokes[0].Points, 2)
	assert.Len(t, strokes[1].Points, 1)
	assert.Equal(t, 2, exports)
}
