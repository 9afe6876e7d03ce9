package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/shouni/go-archviz-kit/pkg/dataurl"
	"github.com/shouni/go-archviz-kit/pkg/sketch"
)

// SketchReader はスケッチの入力元です。remoteio.InputReader が満たします。
type SketchReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// IsSketchSource はバッチ入力として扱うファイルかどうかを拡張子で判定するのだ。
func IsSketchSource(uri string) bool {
	switch strings.ToLower(path.Ext(uri)) {
	case ".json", ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// LoadSketch は入力をスケッチのデータURLに変換するのだ。
// .json はストローク記録としてキャンバスで再描画し、画像ファイルはそのままエンコードするのだ。
func LoadSketch(ctx context.Context, reader SketchReader, uri string, width, height int) (string, error) {
	rc, err := reader.Open(ctx, uri)
	if err != nil {
		return "", fmt.Errorf("スケッチ '%s' を開けませんでした: %w", uri, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("スケッチ '%s' の読み込みに失敗しました: %w", uri, err)
	}

	if strings.EqualFold(path.Ext(uri), ".json") {
		lines, err := sketch.LoadStrokes(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("スケッチ '%s': %w", uri, err)
		}
		if len(lines) == 0 {
			// 空のキャンバスは未描画として扱うのだ
			return "", nil
		}

		// 通知なしで再描画し、最後に1回だけ書き出すのだ
		canvas := sketch.NewCanvas(width, height)
		defer canvas.Close()
		sketch.Replay(canvas, lines)
		exported, err := canvas.Export()
		if err != nil {
			return "", fmt.Errorf("スケッチ '%s' の書き出しに失敗しました: %w", uri, err)
		}
		return exported, nil
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("スケッチ '%s' は画像ではありません (type: %s)", uri, mimeType)
	}
	return dataurl.Encode(mimeType, data), nil
}
