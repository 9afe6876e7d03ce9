package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/internal/builder"
	"github.com/shouni/go-archviz-kit/internal/config"
	"github.com/shouni/go-archviz-kit/internal/pipeline"
	"github.com/shouni/go-archviz-kit/pkg/preview"
	"github.com/shouni/go-archviz-kit/pkg/styles"
)

// serveCmd は生成結果を確認するためのローカルプレビューサーバーを起動するのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "様式カタログと生成結果を配信するプレビューサーバーを起動するのだ。",
	RunE:  serveCommand,
}

func init() {
	serveCmd.Flags().StringVar(&opts.Addr, "addr", config.DefaultPreviewAddr, "待ち受けアドレスなのだ。")
	serveCmd.Flags().StringVar(&opts.Style, "style", "", "初期選択の様式なのだ。")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	appCtx, err := pipeline.SetupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	store, err := builder.OpenHistory(ctx, appCtx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	selector := styles.NewSelector(appCtx.Catalog, func(id string) {
		slog.Info("様式が選ばれたのだ", "style", id)
	})
	if opts.Style != "" {
		if err := selector.Select(opts.Style); err != nil {
			return err
		}
	}

	srv := preview.New(selector, store, appCtx.Reader)
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			slog.Warn("プレビューサーバーの停止に失敗したのだ", "error", err)
		}
	}()

	slog.Info("プレビューサーバーを起動するのだ", "addr", opts.Addr)
	return srv.Listen(opts.Addr)
}
