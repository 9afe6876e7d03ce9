package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/internal/pipeline"
	"github.com/shouni/go-archviz-kit/pkg/api"
)

var sketchStyle string

// sketchesCmd はサーバー側で処理するスケッチを扱うのだ。
var sketchesCmd = &cobra.Command{
	Use:   "sketches",
	Short: "サーバーに預けたスケッチを扱うのだ（要ログイン）。",
}

var sketchesProcessCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "スケッチ画像と様式をアップロードして処理してもらうのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := pipeline.SetupAppContext(cmd.Context(), loadConfig())
		if err != nil {
			return err
		}
		rc, err := appCtx.Reader.Open(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("スケッチ '%s' を開けなかったのだ: %w", args[0], err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return fmt.Errorf("スケッチ '%s' の読み込みに失敗したのだ: %w", args[0], err)
		}

		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			out, err := client.ProcessSketch(ctx, data, http.DetectContentType(data), sketchStyle)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		})
	},
}

var sketchesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "処理済みスケッチを1件表示するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			s, err := client.GetSketch(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		})
	},
}

var sketchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "処理済みスケッチを一覧表示するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			list, err := client.ListSketches(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		})
	},
}

var sketchesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "処理済みスケッチを削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			return client.DeleteSketch(ctx, args[0])
		})
	},
}

func init() {
	sketchesProcessCmd.Flags().StringVar(&sketchStyle, "style", "", "建築様式なのだ。")
	_ = sketchesProcessCmd.MarkFlagRequired("style")
	sketchesCmd.AddCommand(sketchesProcessCmd, sketchesGetCmd, sketchesListCmd, sketchesDeleteCmd)
}
