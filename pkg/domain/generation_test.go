package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerationRequest(t *testing.T) {
	sketch := []byte("\x89PNG\r\n\x1a\n")

	t.Run("様式とスケッチが揃っていればデフォルト値で構築されるのだ", func(t *testing.T) {
		req, err := NewGenerationRequest("Contemporary", sketch, "")
		require.NoError(t, err)

		assert.Equal(t, "Contemporary style building, architectural visualization", req.Prompt)
		assert.Equal(t, "image/png", req.MimeType)
		assert.Equal(t, 30, req.Params.NumInferenceSteps)
		assert.InDelta(t, 7.5, req.Params.GuidanceScale, 1e-9)
		assert.InDelta(t, 0.75, req.Params.Strength, 1e-9)
	})

	tests := []struct {
		name    string
		styleID string
		sketch  []byte
		wantErr error
	}{
		{"両方なし", "", nil, ErrStyleRequired},
		{"様式なし", "", sketch, ErrStyleRequired},
		{"スケッチなし", "Mughal", nil, ErrSketchRequired},
		{"空スケッチ", "Mughal", []byte{}, ErrSketchRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewGenerationRequest(tt.styleID, tt.sketch, "image/png")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, req)
		})
	}
}

func TestPolylines_Clone(t *testing.T) {
	src := Polylines{{Tool: ToolBrush, Points: []Point{{1, 2}, {3, 4}}}}
	dst := src.Clone()

	dst[0].Points[0].X = 99
	assert.Equal(t, 1.0, src[0].Points[0].X, "コピー先の変更が元に波及してはいけないのだ")
	assert.Equal(t, 2, src.PointCount())
	assert.Nil(t, Polylines(nil).Clone())
}

func TestNewTextToImageRequest(t *testing.T) {
	t.Run("空白だけのプロンプトは拒否されるのだ", func(t *testing.T) {
		_, err := NewTextToImageRequest("   ", "")
		assert.ErrorIs(t, err, ErrPromptRequired)
	})

	t.Run("既定のサイズとパラメータが入るのだ", func(t *testing.T) {
		req, err := NewTextToImageRequest(" courtyard house ", " ")
		require.NoError(t, err)
		assert.Equal(t, "courtyard house", req.Prompt)
		assert.Empty(t, req.NegativePrompt)
		assert.Equal(t, 768, req.Width)
		assert.Equal(t, 768, req.Height)
		assert.Equal(t, 30, req.Params.NumInferenceSteps)
		assert.Equal(t, 7.5, req.Params.GuidanceScale)
		assert.Zero(t, req.Params.Strength)
	})
}
