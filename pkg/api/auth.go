package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// LoginRequest はログインの入力です。
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest は新規登録の入力です。
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login は認証に成功するとセッションを更新し、ユーザーを返します。
func (c *Client) Login(ctx context.Context, in LoginRequest) (*domain.User, error) {
	return c.authenticate(ctx, "/auth/login", in)
}

// Signup はアカウントを作成し、そのままログイン状態にします。
func (c *Client) Signup(ctx context.Context, in SignupRequest) (*domain.User, error) {
	return c.authenticate(ctx, "/auth/signup", in)
}

func (c *Client) authenticate(ctx context.Context, path string, in any) (*domain.User, error) {
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, fmt.Errorf("%s の応答にトークンまたはユーザーが含まれていません", path)
	}
	c.session.Set(out.Token, out.User)
	return out.User, nil
}

// Logout はサーバーへログアウトを通知します。通知の成否に関わらずセッションは破棄されます。
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	if err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("ログアウトの通知に失敗しました: %w", err)
	}
	return nil
}

// Me は現在のユーザーを取得してセッションを更新します。
// 未ログインなら nil を返し、取得に失敗した場合はセッションを破棄します。
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	if !c.session.LoggedIn() {
		return nil, nil
	}

	var user domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		slog.WarnContext(ctx, "ユーザー情報の取得に失敗したためセッションを破棄します", "error", err)
		c.session.Clear()
		return nil, err
	}
	c.session.setUser(&user)
	return &user, nil
}
