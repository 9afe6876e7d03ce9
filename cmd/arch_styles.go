package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/pkg/api"
)

var (
	styleQuery api.StyleQuery
	styleInput api.StyleInput
)

// archStylesCmd はバックエンドの建築様式リソースを操作するのだ。
var archStylesCmd = &cobra.Command{
	Use:   "arch-styles",
	Short: "API 上の建築様式を操作するのだ。",
}

var archStylesListCmd = &cobra.Command{
	Use:   "list",
	Short: "建築様式を一覧表示するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			list, err := client.ListStyles(ctx, styleQuery)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		})
	},
}

var archStylesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "建築様式を1件表示するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStyleID(args[0])
		if err != nil {
			return err
		}
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			s, err := client.GetStyle(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		})
	},
}

var archStylesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "建築様式を登録するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			s, err := client.CreateStyle(ctx, styleInput)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		})
	},
}

var archStylesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "指定したフィールドだけ建築様式を更新するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStyleID(args[0])
		if err != nil {
			return err
		}
		in := styleUpdateFromFlags(cmd)
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			s, err := client.UpdateStyle(ctx, id, in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		})
	},
}

var archStylesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "建築様式を削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStyleID(args[0])
		if err != nil {
			return err
		}
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			return client.DeleteStyle(ctx, id)
		})
	},
}

var archStylesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "名前と説明から建築様式を検索するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			list, err := client.SearchStyles(ctx, args[0], styleQuery.Skip, styleQuery.Limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		})
	},
}

var archStylesRegionCmd = &cobra.Command{
	Use:   "region <region>",
	Short: "地域ごとの建築様式を表示するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			list, err := client.StylesByRegion(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{archStylesListCmd, archStylesSearchCmd} {
		c.Flags().IntVar(&styleQuery.Skip, "skip", 0, "読み飛ばす件数なのだ。")
		c.Flags().IntVar(&styleQuery.Limit, "limit", 0, "最大件数なのだ（0 ならサーバーの既定）。")
	}
	archStylesListCmd.Flags().StringVar(&styleQuery.Region, "region", "", "地域で絞り込むのだ。")

	for _, c := range []*cobra.Command{archStylesCreateCmd, archStylesUpdateCmd} {
		c.Flags().StringVar(&styleInput.Name, "name", "", "様式名なのだ。")
		c.Flags().StringVar(&styleInput.Description, "description", "", "説明なのだ。")
		c.Flags().StringVar(&styleInput.Region, "region", "", "地域なのだ。")
		c.Flags().StringToStringVar(&styleInput.Features, "feature", nil, "特徴（key=value）なのだ。")
		c.Flags().StringSliceVar(&styleInput.Materials, "material", nil, "主な素材なのだ。")
		c.Flags().StringSliceVar(&styleInput.Examples, "example", nil, "代表的な建築物なのだ。")
		c.Flags().StringSliceVar(&styleInput.ImageURLs, "image-url", nil, "参照画像のURLなのだ。")
	}
	_ = archStylesCreateCmd.MarkFlagRequired("name")

	archStylesCmd.AddCommand(
		archStylesListCmd,
		archStylesGetCmd,
		archStylesCreateCmd,
		archStylesUpdateCmd,
		archStylesDeleteCmd,
		archStylesSearchCmd,
		archStylesRegionCmd,
	)
}

func parseStyleID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("様式 ID '%s' は正の整数で指定してほしいのだ", s)
	}
	return id, nil
}

// styleUpdateFromFlags は明示されたフラグだけを更新内容にするのだ。
func styleUpdateFromFlags(cmd *cobra.Command) api.StyleUpdate {
	var in api.StyleUpdate
	f := cmd.Flags()
	if f.Changed("name") {
		in.Name = &styleInput.Name
	}
	if f.Changed("description") {
		in.Description = &styleInput.Description
	}
	if f.Changed("region") {
		in.Region = &styleInput.Region
	}
	if f.Changed("feature") {
		in.Features = styleInput.Features
	}
	if f.Changed("material") {
		in.Materials = styleInput.Materials
	}
	if f.Changed("example") {
		in.Examples = styleInput.Examples
	}
	if f.Changed("image-url") {
		in.ImageURLs = styleInput.ImageURLs
	}
	return in
}
