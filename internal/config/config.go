package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultAPIURL       = "http://localhost:8000/api/v1"
	DefaultBackend      = BackendREST
	DefaultImageModel   = "gemini-2.5-flash-image"
	DefaultLang         = "en"
	DefaultHTTPTimeout  = 120 * time.Second
	DefaultOutputDir    = "output"                  // 生成画像とメタデータの保存先なのだ
	DefaultHistoryDB    = "data/archviz/history.db" // 生成履歴の SQLite なのだ
	DefaultParallel     = 2
	DefaultRateInterval = 6 * time.Minute // バックエンドの上限（1時間に10回）に合わせた間隔なのだ
	DefaultRateBurst    = 1
	DefaultPreviewAddr  = "127.0.0.1:8080"
	DefaultCacheTTL     = 30 * time.Minute

	sessionDirName  = "archviz"
	sessionFileName = "session.json"
)

// 生成バックエンド
const (
	BackendREST   = "rest"
	BackendGemini = "gemini"
)

// 様式カタログの取得元（ARCHVIZ_STYLES_FILE が指定されていればそちらが優先なのだ）
const (
	StylesSourceBuiltin = "builtin"
	StylesSourceAPI     = "api"
)

// Config はアプリケーション全体の環境設定（API の場所やキー）を保持する構造体なのだ。
type Config struct {
	APIURL       string
	Backend      string
	GeminiAPIKey string
	ImageModel   string
	Lang         string
	SessionFile  string
	HistoryDB    string
	StylesFile   string // 空なら StylesSource に従うのだ
	StylesSource string // builtin または api

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		APIURL:       envutil.GetEnv("ARCHVIZ_API_URL", DefaultAPIURL),
		Backend:      envutil.GetEnv("ARCHVIZ_BACKEND", DefaultBackend),
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		ImageModel:   envutil.GetEnv("ARCHVIZ_IMAGE_MODEL", DefaultImageModel),
		Lang:         envutil.GetEnv("ARCHVIZ_LANG", DefaultLang),
		SessionFile:  envutil.GetEnv("ARCHVIZ_SESSION_FILE", defaultSessionFile()),
		HistoryDB:    envutil.GetEnv("ARCHVIZ_HISTORY_DB", DefaultHistoryDB),
		StylesFile:   envutil.GetEnv("ARCHVIZ_STYLES_FILE", ""),
		StylesSource: envutil.GetEnv("ARCHVIZ_STYLES_SOURCE", StylesSourceBuiltin),
	}
}

// Apply は CLI フラグで指定された値を環境変数より優先して反映するのだ。
func (c *Config) Apply(opts GenerateOptions) {
	c.Options = opts
	if opts.Backend != "" {
		c.Backend = opts.Backend
	}
	if opts.ImageModel != "" {
		c.ImageModel = opts.ImageModel
	}
	if opts.Lang != "" {
		c.Lang = opts.Lang
	}
	if opts.APIURL != "" {
		c.APIURL = opts.APIURL
	}
	if opts.StylesSource != "" {
		c.StylesSource = opts.StylesSource
	}
}

// Validate は生成に必要な設定が揃っているかを確認するのだ。
func (c *Config) Validate() error {
	switch c.StylesSource {
	case "", StylesSourceBuiltin, StylesSourceAPI:
	default:
		return fmt.Errorf("未対応の様式カタログ取得元 '%s' なのだ (builtin または api)", c.StylesSource)
	}
	switch c.Backend {
	case BackendREST:
		if c.APIURL == "" {
			return fmt.Errorf("ARCHVIZ_API_URL が空なのだ")
		}
	case BackendGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("gemini バックエンドには環境変数 GEMINI_API_KEY が必要なのだ")
		}
	default:
		return fmt.Errorf("未対応のバックエンド '%s' なのだ (rest または gemini)", c.Backend)
	}
	return nil
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 入力関連
	StrokesFile string // --strokes: ストロークJSON
	SketchFile  string // --sketch: 描画済みのスケッチ画像
	InputDir    string // --input-dir: バッチ入力ディレクトリ（ローカル or gs://...）
	Style       string // --style

	// 出力関連
	OutputDir string // --output-dir（ローカル or gs://...）

	// 生成設定
	Backend    string // --backend
	ImageModel string // --image-model
	APIURL     string // --api-url
	Lang       string // --lang

	StylesSource string // --styles-source

	// 実行制御
	Parallel     int           // --parallel
	RateInterval time.Duration // --rate-interval
	HTTPTimeout  time.Duration // --http-timeout
	Addr         string        // --addr: プレビューサーバー
	Verbose      bool          // --verbose
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".archviz", sessionFileName)
	}
	return filepath.Join(dir, sessionDirName, sessionFileName)
}
