package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/internal/builder"
	"github.com/shouni/go-archviz-kit/internal/pipeline"
	"github.com/shouni/go-archviz-kit/pkg/styles"
)

var prefetchThumbnails bool

// stylesCmd は選べる建築様式を一覧表示するのだ。
var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "選べる建築様式を一覧表示するのだ。",
	RunE:  stylesCommand,
}

func init() {
	stylesCmd.Flags().StringVar(&opts.Style, "style", "", "選択中として印を付ける様式なのだ。")
	stylesCmd.Flags().BoolVar(&prefetchThumbnails, "thumbnails", false, "参照画像を事前に取得して件数を表示するのだ。")
}

func stylesCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	appCtx, err := pipeline.SetupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	selector := styles.NewSelector(appCtx.Catalog, nil)
	if opts.Style != "" {
		if err := selector.Select(opts.Style); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	for _, e := range selector.Entries() {
		mark := " "
		if e.Active {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-16s %s\n", mark, e.ID, e.Description)
	}

	if prefetchThumbnails {
		thumbs, err := builder.BuildThumbnailer(appCtx).Prefetch(ctx, appCtx.Catalog)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "thumbnails: %d/%d\n", len(thumbs), len(appCtx.Catalog))
	}
	return nil
}
