package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/pkg/api"
)

var (
	projectName        string
	projectDescription string
	projectStyle       string
)

// projectsCmd はバックエンドの設計プロジェクトを操作するのだ。
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "設計プロジェクトを操作するのだ（要ログイン）。",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "プロジェクトを一覧表示するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			projects, err := client.ListProjects(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), projects)
		})
	},
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "プロジェクトを1件表示するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			p, err := client.GetProject(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		})
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "プロジェクトを作成するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			p, err := client.CreateProject(ctx, api.CreateProjectRequest{
				Name:        projectName,
				Description: projectDescription,
				Style:       projectStyle,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		})
	},
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "指定したフィールドだけプロジェクトを更新するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in api.UpdateProjectRequest
		if cmd.Flags().Changed("name") {
			in.Name = &projectName
		}
		if cmd.Flags().Changed("description") {
			in.Description = &projectDescription
		}
		if cmd.Flags().Changed("project-style") {
			in.Style = &projectStyle
		}
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			p, err := client.UpdateProject(ctx, args[0], in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		})
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "プロジェクトを削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			return client.DeleteProject(ctx, args[0])
		})
	},
}

var projectsAddGenerationCmd = &cobra.Command{
	Use:   "add-generation <project-id> <generation-id>",
	Short: "生成結果をプロジェクトに追加するのだ。",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			p, err := client.AddGenerationToProject(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{projectsCreateCmd, projectsUpdateCmd} {
		c.Flags().StringVar(&projectName, "name", "", "プロジェクト名なのだ。")
		c.Flags().StringVar(&projectDescription, "description", "", "説明なのだ。")
		c.Flags().StringVar(&projectStyle, "project-style", "", "プロジェクトの建築様式なのだ。")
	}
	_ = projectsCreateCmd.MarkFlagRequired("name")

	projectsCmd.AddCommand(
		projectsListCmd,
		projectsGetCmd,
		projectsCreateCmd,
		projectsUpdateCmd,
		projectsDeleteCmd,
		projectsAddGenerationCmd,
	)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("出力の整形に失敗したのだ: %w", err)
	}
	return nil
}
