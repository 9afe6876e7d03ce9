package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/pkg/api"
)

var (
	designPrompt  string
	designStyle   string
	designDetails map[string]string
)

// generateDesignCmd はプロンプトと様式からデザインの生成を依頼するのだ。
var generateDesignCmd = &cobra.Command{
	Use:   "generate-design",
	Short: "プロンプトと様式からデザインの生成を依頼するのだ（要ログイン）。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := api.DesignRequest{Prompt: designPrompt, Style: designStyle}
		if len(designDetails) > 0 {
			in.AdditionalDetails = make(map[string]any, len(designDetails))
			for k, v := range designDetails {
				in.AdditionalDetails[k] = v
			}
		}
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			d, err := client.GenerateDesign(ctx, in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		})
	},
}

func init() {
	generateDesignCmd.Flags().StringVarP(&designPrompt, "prompt", "p", "", "デザインの説明なのだ。")
	generateDesignCmd.Flags().StringVar(&designStyle, "style", "", "建築様式なのだ。")
	generateDesignCmd.Flags().StringToStringVar(&designDetails, "detail", nil, "追加の指定（key=value）なのだ。")
	_ = generateDesignCmd.MarkFlagRequired("prompt")
	_ = generateDesignCmd.MarkFlagRequired("style")
}
