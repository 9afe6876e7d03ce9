package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/internal/config"
	"github.com/shouni/go-archviz-kit/pkg/api"
	"github.com/shouni/go-archviz-kit/pkg/generator"
	"github.com/shouni/go-archviz-kit/pkg/i18n"
)

// opts は全サブコマンドで共有するフラグの値なのだ。
var opts config.GenerateOptions

var rootCmd = &cobra.Command{
	Use:   "archviz",
	Short: "手描きスケッチから建築パースを生成するのだ。",
	Long: `キャンバスに描いたストローク（JSON）やスケッチ画像と建築様式を送り、
生成された建築パースを保存するのだ。認証やプロジェクト管理の API も扱えるのだよ。`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunAppE,
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		renderCmd,
		batchCmd,
		txt2imgCmd,
		stylesCmd,
		archStylesCmd,
		sketchesCmd,
		generateDesignCmd,
		loginCmd,
		signupCmd,
		logoutCmd,
		whoamiCmd,
		projectsCmd,
		designsCmd,
		historyCmd,
		serveCmd,
	)
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 接続先 ---
	rootCmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "API のベースURLなのだ（既定は ARCHVIZ_API_URL）。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "HTTPリクエストのタイムアウトなのだ。")

	// --- 生成バックエンド ---
	rootCmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "生成バックエンド（rest または gemini）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "gemini バックエンドで使う画像モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.StylesSource, "styles-source", "", "様式カタログの取得元（builtin または api）なのだ。")

	// --- 表示 ---
	rootCmd.PersistentFlags().StringVar(&opts.Lang, "lang", "", "メッセージの言語（en, hi, ta, bn）なのだ。")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "デバッグログを出すのだ。")
}

// preRunAppE は、コマンド実行前にロガーを整えるのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if opts.Verbose {
		// ラスタライザの内部ログもデバッグ時だけ流すのだ
		gg.SetLogger(logger)
	}
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig は環境変数を読み込み、フラグの値で上書きするのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.Apply(opts)
	return cfg
}

// withAPIClient はセッションを読み込んで API クライアントを渡し、終了時にセッションを保存するのだ。
// 401 はローカライズした「ログインしてください」として報告するのだ。
func withAPIClient(cmd *cobra.Command, fn func(ctx context.Context, client *api.Client) error) error {
	cfg := loadConfig()
	session, err := api.LoadSession(cfg.SessionFile)
	if err != nil {
		return err
	}

	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	client := api.NewClient(cfg.APIURL, generator.NewAPIHTTPClient(timeout), session)

	runErr := fn(cmd.Context(), client)
	if err := session.Save(); err != nil {
		slog.Warn("セッションの保存に失敗したのだ", "path", cfg.SessionFile, "error", err)
	}

	if errors.Is(runErr, api.ErrUnauthorized) {
		return fmt.Errorf("%s: %w", i18n.New(cfg.Lang).T(i18n.KeyLoginRequired), runErr)
	}
	return runErr
}
