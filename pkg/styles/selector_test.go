package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

func TestSelector(t *testing.T) {
	var notified []string
	s := NewSelector(DefaultCatalog(), func(id string) { notified = append(notified, id) })

	t.Run("未選択ならどれも active にならないのだ", func(t *testing.T) {
		for _, e := range s.Entries() {
			assert.False(t, e.Active, e.ID)
		}
		assert.Empty(t, s.Selected())
	})

	t.Run("選択すると1つだけ active になり通知されるのだ", func(t *testing.T) {
		require.NoError(t, s.Select("dravidian"))

		var active []string
		for _, e := range s.Entries() {
			if e.Active {
				active = append(active, e.ID)
			}
		}
		assert.Equal(t, []string{"Dravidian"}, active)
		assert.Equal(t, []string{"Dravidian"}, notified)
	})

	t.Run("未知の様式は拒否され状態は変わらないのだ", func(t *testing.T) {
		err := s.Select("Gothic")
		assert.ErrorIs(t, err, ErrUnknownStyle)
		assert.Equal(t, "Dravidian", s.Selected())
		assert.Len(t, notified, 1)
	})
}

func TestSelector_EmptyCatalog(t *testing.T) {
	s := NewSelector(domain.StyleCatalog{}, nil)

	assert.Empty(t, s.Entries())
	assert.ErrorIs(t, s.Select("Mughal"), ErrUnknownStyle)
}
