package cmd

import (
	"context"
	"fmt"

	"github.com/shouni/go-utils/envutil"
	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/pkg/api"
)

var (
	authEmail    string
	authPassword string
	authName     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "ログインしてセッションを保存するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			user, err := client.Login(ctx, api.LoginRequest{Email: authEmail, Password: password()})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "アカウントを作成してログインするのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			user, err := client.Signup(ctx, api.SignupRequest{Name: authName, Email: authEmail, Password: password()})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed up as %s <%s>\n", user.Name, user.Email)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "ログアウトしてセッションを消すのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			return client.Logout(ctx)
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "ログイン中のユーザーを表示するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAPIClient(cmd, func(ctx context.Context, client *api.Client) error {
			user, err := client.Me(ctx)
			if err != nil {
				return err
			}
			if user == nil {
				return api.ErrUnauthorized
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "メールアドレスなのだ。")
		c.Flags().StringVar(&authPassword, "password", "", "パスワードなのだ（省略時は ARCHVIZ_PASSWORD）。")
		_ = c.MarkFlagRequired("email")
	}
	signupCmd.Flags().StringVar(&authName, "name", "", "表示名なのだ。")
}

// password はフラグ、なければ環境変数からパスワードを取るのだ。
func password() string {
	if authPassword != "" {
		return authPassword
	}
	return envutil.GetEnv("ARCHVIZ_PASSWORD", "")
}
