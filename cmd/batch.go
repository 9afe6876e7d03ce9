package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/internal/config"
	"github.com/shouni/go-archviz-kit/internal/pipeline"
)

// batchCmd はディレクトリ内のスケッチをまとめて生成するのだ。
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "ディレクトリ内のスケッチをまとめて生成するのだ。",
	Long: `--input-dir 直下のストロークJSONとスケッチ画像を名前順に並べ、同じ様式で生成するのだ。
バックエンドの利用上限を守るため、呼び出しは --rate-interval ごとに1回に絞られるのだよ。
失敗したスケッチがあっても残りは最後まで処理するのだ。`,
	RunE: batchCommand,
}

func init() {
	batchCmd.Flags().StringVarP(&opts.InputDir, "input-dir", "d", "", "スケッチを置いたディレクトリなのだ。")
	batchCmd.Flags().StringVar(&opts.Style, "style", "", "建築様式（例: Dravidian）なのだ。")
	batchCmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "保存先（ローカル or gs://...）なのだ。")
	batchCmd.Flags().IntVarP(&opts.Parallel, "parallel", "p", config.DefaultParallel, "同時に処理するスケッチ数なのだ。")
	batchCmd.Flags().DurationVar(&opts.RateInterval, "rate-interval", config.DefaultRateInterval, "生成呼び出しの最小間隔なのだ（0 で無制限）。")
	_ = batchCmd.MarkFlagRequired("input-dir")
}

func batchCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	outcomes, err := pipeline.ExecuteBatch(cmd.Context(), cfg)
	w := cmd.OutOrStdout()
	for _, o := range outcomes {
		if o.Job.Source == "" {
			continue // 中断で未着手のジョブなのだ
		}
		switch {
		case o.Err == nil:
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.Job.Index, o.Status, o.Job.Source, o.Published.ImagePath)
		case o.Message != "":
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.Job.Index, o.Status, o.Job.Source, o.Message)
		default:
			fmt.Fprintf(w, "%d\t%s\t%s\t%v\n", o.Job.Index, o.Status, o.Job.Source, o.Err)
		}
	}
	return err
}
