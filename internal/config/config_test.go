package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ARCHVIZ_API_URL", "https://api.example.com/v1")
	t.Setenv("ARCHVIZ_BACKEND", BackendGemini)
	t.Setenv("ARCHVIZ_LANG", "ta")

	cfg := LoadConfig()
	assert.Equal(t, "https://api.example.com/v1", cfg.APIURL)
	assert.Equal(t, BackendGemini, cfg.Backend)
	assert.Equal(t, "ta", cfg.Lang)
	assert.Equal(t, DefaultImageModel, cfg.ImageModel)
	assert.NotEmpty(t, cfg.SessionFile)
}

func TestConfig_ApplyAndValidate(t *testing.T) {
	cfg := &Config{APIURL: DefaultAPIURL, Backend: BackendREST, Lang: "en"}

	t.Run("フラグが環境変数より優先されるのだ", func(t *testing.T) {
		cfg.Apply(GenerateOptions{Lang: "hi", Parallel: 3})
		assert.Equal(t, "hi", cfg.Lang)
		assert.Equal(t, BackendREST, cfg.Backend)
		assert.Equal(t, 3, cfg.Options.Parallel)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("gemini には API キーが必要なのだ", func(t *testing.T) {
		cfg.Apply(GenerateOptions{Backend: BackendGemini})
		assert.ErrorContains(t, cfg.Validate(), "GEMINI_API_KEY")
		cfg.GeminiAPIKey = "key"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("未知のバックエンドはエラーなのだ", func(t *testing.T) {
		cfg.Apply(GenerateOptions{Backend: "dalle"})
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_StylesSource(t *testing.T) {
	t.Setenv("ARCHVIZ_STYLES_SOURCE", StylesSourceAPI)
	cfg := LoadConfig()
	assert.Equal(t, StylesSourceAPI, cfg.StylesSource)

	t.Run("フラグで組み込みに戻せるのだ", func(t *testing.T) {
		cfg.Apply(GenerateOptions{StylesSource: StylesSourceBuiltin})
		assert.Equal(t, StylesSourceBuiltin, cfg.StylesSource)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("未知の取得元はエラーなのだ", func(t *testing.T) {
		cfg.Apply(GenerateOptions{StylesSource: "ftp"})
		assert.ErrorContains(t, cfg.Validate(), "ftp")
	})
}
