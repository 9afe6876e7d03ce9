package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyles(t *testing.T) {
	t.Run("JSONから表示順どおりにパースできるのだ", func(t *testing.T) {
		input := `[
			{"id": "Mughal", "name": "Mughal Architecture", "description": "domes", "image_url": "/styles/mughal.jpg"},
			{"id": "Temple", "name": "Temple Architecture", "description": "sculptures", "image_url": "/styles/temple.jpg"}
		]`

		catalog, err := ParseStyles([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"Mughal", "Temple"}, catalog.IDs())

		found := catalog.Find("temple")
		require.NotNil(t, found)
		assert.Equal(t, "Temple Architecture", found.Name)
		assert.Nil(t, catalog.Find(""))
		assert.Nil(t, catalog.Find("Gothic"))
	})

	t.Run("IDの重複はエラーなのだ", func(t *testing.T) {
		_, err := ParseStyles([]byte(`[{"id":"Modern"},{"id":"modern"}]`))
		assert.ErrorContains(t, err, "重複")
	})

	t.Run("IDが空のエントリはエラーなのだ", func(t *testing.T) {
		_, err := ParseStyles([]byte(`[{"name":"no id"}]`))
		assert.Error(t, err)
	})

	t.Run("空配列は空カタログとして扱うのだ", func(t *testing.T) {
		catalog, err := ParseStyles([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, catalog)
	})
}
