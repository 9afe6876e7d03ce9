package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/internal/config"
	"github.com/shouni/go-archviz-kit/internal/pipeline"
)

var (
	txtPrompt         string
	txtNegativePrompt string
)

// txt2imgCmd はスケッチなしでプロンプトから画像を生成するのだ。
var txt2imgCmd = &cobra.Command{
	Use:   "txt2img",
	Short: "プロンプトだけから画像を生成するのだ。",
	Long: `プロンプト（--prompt）と除外したい要素（--negative-prompt）を送り、
テキストからの生成エンドポイントを1回だけ呼び出すのだ。
結果の画像とパラメータは --output-dir に保存されるのだよ。`,
	Args: cobra.NoArgs,
	RunE: txt2imgCommand,
}

func init() {
	txt2imgCmd.Flags().StringVarP(&txtPrompt, "prompt", "p", "", "生成したい内容のプロンプトなのだ。")
	txt2imgCmd.Flags().StringVar(&txtNegativePrompt, "negative-prompt", "", "避けたい要素なのだ。")
	txt2imgCmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "保存先（ローカル or gs://...）なのだ。")
	_ = txt2imgCmd.MarkFlagRequired("prompt")
}

func txt2imgCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("プロンプトからの生成を開始するのだ！", "backend", cfg.Backend, "output", opts.OutputDir)

	out, err := pipeline.ExecuteTextToImage(cmd.Context(), cfg, txtPrompt, txtNegativePrompt)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out.Published.ImagePath)
	return nil
}
