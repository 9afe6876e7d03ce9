package styles

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-archviz-kit/pkg/api"
	"github.com/shouni/go-archviz-kit/pkg/domain"
)

func TestFromArchitecturalStyles(t *testing.T) {
	catalog := FromArchitecturalStyles([]domain.ArchitecturalStyle{
		{ID: 1, Name: "Gothic", Description: "尖頭アーチ", ImageURLs: []string{"/g1.png", "/g2.png"}},
		{ID: 2, Name: "  "},
		{ID: 3, Name: "gothic", Description: "重複"},
		{ID: 4, Name: "Baroque"},
	})

	assert.Equal(t, []string{"Gothic", "Baroque"}, catalog.IDs(), "空の名前と重複は捨てるのだ")
	assert.Equal(t, "尖頭アーチ", catalog[0].Description, "重複は先勝ちなのだ")
	assert.Equal(t, "/g1.png", catalog[0].ImageURL)
	assert.Empty(t, catalog[1].ImageURL)
}

func TestLoadRemoteCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("短いページが来るまでページングするのだ", func(t *testing.T) {
		full := make([]domain.ArchitecturalStyle, api.MaxStylePageSize)
		for i := range full {
			full[i] = domain.ArchitecturalStyle{ID: i, Name: fmt.Sprintf("Style%03d", i)}
		}
		src := &mockStyleSource{pages: [][]domain.ArchitecturalStyle{
			full,
			{{ID: 999, Name: "Last"}},
		}}

		catalog, err := LoadRemoteCatalog(ctx, src)
		require.NoError(t, err)
		assert.Len(t, catalog, api.MaxStylePageSize+1)
		require.Len(t, src.queries, 2)
		assert.Equal(t, api.StyleQuery{Skip: 0, Limit: api.MaxStylePageSize}, src.queries[0])
		assert.Equal(t, api.StyleQuery{Skip: api.MaxStylePageSize, Limit: api.MaxStylePageSize}, src.queries[1])
	})

	t.Run("取得エラーはそのまま返すのだ", func(t *testing.T) {
		boom := errors.New("connection refused")
		_, err := LoadRemoteCatalog(ctx, &mockStyleSource{err: boom})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("空の一覧はエラーなのだ", func(t *testing.T) {
		_, err := LoadRemoteCatalog(ctx, &mockStyleSource{})
		assert.Error(t, err)
	})
}
