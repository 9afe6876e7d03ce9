package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/internal/config"
	"github.com/shouni/go-archviz-kit/internal/pipeline"
)

// renderCmd は1枚のスケッチから建築パースを生成するのだ。
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "スケッチ1枚と様式から建築パースを生成するのだ。",
	Long: `ストロークJSON（--strokes）かスケッチ画像（--sketch）を読み込み、
選んだ様式（--style）で生成エンドポイントを1回だけ呼び出すのだ。
結果の画像、入力スケッチ、パラメータは --output-dir に保存されるのだよ。`,
	RunE: renderCommand,
}

func init() {
	renderCmd.Flags().StringVarP(&opts.StrokesFile, "strokes", "s", "", "キャンバスのストロークJSONなのだ。")
	renderCmd.Flags().StringVar(&opts.SketchFile, "sketch", "", "描画済みのスケッチ画像（PNG/JPEG）なのだ。")
	renderCmd.Flags().StringVar(&opts.Style, "style", "", "建築様式（例: Mughal）なのだ。")
	renderCmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "保存先（ローカル or gs://...）なのだ。")
	renderCmd.MarkFlagsMutuallyExclusive("strokes", "sketch")
}

func renderCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("建築パースの生成を開始するのだ！",
		"backend", cfg.Backend,
		"style", opts.Style,
		"output", opts.OutputDir)

	out, err := pipeline.ExecuteRender(cmd.Context(), cfg)
	if err != nil {
		if re, ok := pipeline.AsRenderError(err); ok {
			slog.Debug("生成に失敗した原因なのだ", "error", re.Err)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out.Published.ImagePath)
	return nil
}
