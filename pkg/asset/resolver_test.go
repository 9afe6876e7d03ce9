package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexedRegex(t *testing.T) {
	assert.True(t, RenderFileRegex.MatchString("render_12.png"))
	assert.False(t, RenderFileRegex.MatchString("render.png"))
	assert.False(t, RenderFileRegex.MatchString("xrender_1.png"))
	assert.True(t, SketchFileRegex.MatchString("sketch_3.png"))
}

func TestExtensionForMime(t *testing.T) {
	tests := map[string]string{
		"image/png":  ".png",
		"image/JPEG": ".jpg",
		"image/webp": ".webp",
		"":           ".png",
	}
	for mimeType, want := range tests {
		assert.Equal(t, want, ExtensionForMime(mimeType), mimeType)
	}
	assert.Equal(t, "render.jpg", WithExtension("render.png", ".jpg"))
}
