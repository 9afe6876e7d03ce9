package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-archviz-kit/internal/config"
	"github.com/shouni/go-archviz-kit/internal/runner"
	"github.com/shouni/go-archviz-kit/pkg/domain"
)

func TestDescribe(t *testing.T) {
	t.Run("ローカライズ済みメッセージを表に出すのだ", func(t *testing.T) {
		err := describe(runner.Outcome{Message: "Please select a style", Err: domain.ErrStyleRequired})
		assert.EqualError(t, err, "Please select a style")
		assert.ErrorIs(t, err, domain.ErrStyleRequired)

		wrapped := fmt.Errorf("render: %w", err)
		re, ok := AsRenderError(wrapped)
		require.True(t, ok)
		assert.Equal(t, domain.ErrStyleRequired, re.Err)
	})

	t.Run("メッセージがなければ原因をそのまま返すのだ", func(t *testing.T) {
		cause := errors.New("スケッチ 'a.png' を開けませんでした")
		err := describe(runner.Outcome{Err: cause})
		assert.Same(t, cause, err)
		_, ok := AsRenderError(err)
		assert.False(t, ok)
	})
}

func TestExecute_RequiresInput(t *testing.T) {
	t.Run("スケッチ未指定は接続前にエラーなのだ", func(t *testing.T) {
		_, err := ExecuteRender(context.Background(), &config.Config{})
		assert.ErrorContains(t, err, "--strokes")
	})

	t.Run("入力ディレクトリ未指定もエラーなのだ", func(t *testing.T) {
		_, err := ExecuteBatch(context.Background(), &config.Config{})
		assert.ErrorContains(t, err, "--input-dir")
	})

	t.Run("空のプロンプトも接続前にエラーなのだ", func(t *testing.T) {
		_, err := ExecuteTextToImage(context.Background(), &config.Config{}, "  ", "")
		assert.ErrorIs(t, err, domain.ErrPromptRequired)
		assert.ErrorContains(t, err, "--prompt")
	})
}
