package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rec := &Record{
		StyleID:    "Mughal",
		Prompt:     domain.BuildPrompt("Mughal"),
		Params:     domain.DefaultGenerationParams(),
		Backend:    "rest",
		Status:     StatusSuccess,
		OutputPath: "out/render.png",
		MimeType:   "image/png",
	}
	require.NoError(t, s.Record(ctx, rec))
	assert.NotEmpty(t, rec.ID, "ID が採番されるのだ")
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Params, got.Params)
	assert.Equal(t, "out/render.png", got.OutputPath)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, status := range []string{StatusSuccess, StatusFailed, StatusInvalid} {
		require.NoError(t, s.Record(ctx, &Record{
			StyleID:   "Temple",
			Status:    status,
			Backend:   "rest",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	t.Run("新しい順に返るのだ", func(t *testing.T) {
		list, err := s.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, StatusInvalid, list[0].Status)
		assert.Equal(t, StatusSuccess, list[2].Status)
	})

	t.Run("件数を絞れるのだ", func(t *testing.T) {
		list, err := s.List(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}
