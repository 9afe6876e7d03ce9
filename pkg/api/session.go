package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// Session はログイン中のトークンとユーザー情報です。
// CLI の起動時に読み込まれ、Client に渡され、終了時に保存または削除されます。
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
	user  *domain.User
}

type sessionFile struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// NewSession は保存先パスだけを持つ未ログインのセッションを作成します。
// path が空の場合は保存されないメモリ上のセッションになります。
func NewSession(path string) *Session {
	return &Session{path: path}
}

// LoadSession はファイルからセッションを読み込みます。ファイルが無ければ未ログインとして扱います。
func LoadSession(path string) (*Session, error) {
	s := NewSession(path)
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("セッションファイル '%s' の読み込みに失敗しました: %w", path, err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("セッションファイル '%s' のパースに失敗しました: %w", path, err)
	}
	s.token, s.user = f.Token, f.User
	return s, nil
}

// Token は Bearer トークンを返します。未ログインなら空文字です。
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User はログイン中のユーザーを返します。
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn はトークンを保持しているかどうかです。
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Set はトークンとユーザーを更新します。
func (s *Session) Set(token string, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) setUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Clear はトークンとユーザーを破棄します。
func (s *Session) Clear() {
	s.Set("", nil)
}

// Save はセッションをファイルへ書き出します。未ログインの場合はファイルを削除します。
func (s *Session) Save() error {
	if s.path == "" {
		return nil
	}

	s.mu.RLock()
	f := sessionFile{Token: s.token, User: s.user}
	s.mu.RUnlock()

	if f.Token == "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("セッションファイルの削除に失敗しました: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("セッションのエンコードに失敗しました: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("セッションディレクトリの作成に失敗しました: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("セッションファイル '%s' の書き込みに失敗しました: %w", s.path, err)
	}
	return nil
}
