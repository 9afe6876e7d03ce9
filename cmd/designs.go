package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/internal/pipeline"
	"github.com/shouni/go-archviz-kit/pkg/api"
)

var designOutput string

// designsCmd はギャラリーの生成済みデザインを扱うのだ。
var designsCmd = &cobra.Command{
	Use:   "designs",
	Short: "生成済みデザインを扱うのだ（要ログイン）。",
}

var designsListCmd = &cobra.Command{
	Use:   "list",
	Short: "デザインを一覧表示するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			designs, err := client.ListDesigns(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), designs)
		})
	},
}

var designsDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "デザイン画像を保存するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := pipeline.SetupAppContext(cmd.Context(), loadConfig())
		if err != nil {
			return err
		}
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			data, err := client.DownloadDesign(ctx, args[0])
			if err != nil {
				return err
			}
			out := designOutput
			if out == "" {
				out = args[0] + ".png"
			}
			if err := appCtx.Writer.Write(ctx, out, bytes.NewReader(data), "image/png"); err != nil {
				return fmt.Errorf("デザインの保存に失敗したのだ: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

var designsShareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "デザインの共有URLを発行するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			url, err := client.ShareDesign(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		})
	},
}

func init() {
	designsDownloadCmd.Flags().StringVarP(&designOutput, "output", "o", "", "保存先（ローカル or gs://...）なのだ。")
	designsCmd.AddCommand(designsListCmd, designsDownloadCmd, designsShareCmd)
}
