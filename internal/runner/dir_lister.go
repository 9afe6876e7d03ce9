package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirLister はローカルディレクトリ直下のファイルを列挙するのだ。
// 列挙した URI はそのまま remoteio.InputReader で開けるのだ。
type DirLister struct{}

// List は uri 直下の通常ファイルのパスを fn に渡すのだ。サブディレクトリは辿らないのだ。
func (DirLister) List(ctx context.Context, uri string, fn func(string) error) error {
	if strings.HasPrefix(uri, "gs://") {
		// TODO: GCS のプレフィックス列挙に対応する（storage.Query を使う）
		return fmt.Errorf("GCS ディレクトリの列挙には未対応なのだ: %s", uri)
	}
	entries, err := os.ReadDir(uri)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.Type().IsRegular() {
			continue
		}
		if err := fn(filepath.Join(uri, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
