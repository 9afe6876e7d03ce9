package asset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は生成された画像を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultRenderFileName は生成されたパース画像の共通のベースファイル名です。
	DefaultRenderFileName = "render.png"
	// DefaultSketchFileName は入力スケッチ画像の共通のベースファイル名です。
	DefaultSketchFileName = "sketch.png"
	// DefaultMetadataFileName は生成パラメータを記録する JSON のベースファイル名です。
	DefaultMetadataFileName = "render.json"
)

var (
	// RenderFileRegex は生成画像 (render_1.png 等) に一致します
	RenderFileRegex = createIndexedRegex(DefaultRenderFileName)
	// SketchFileRegex は入力スケッチ (sketch_1.png 等) に一致します
	SketchFileRegex = createIndexedRegex(DefaultSketchFileName)
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ResolveBaseURL は、入力パス（URLまたはローカルパス）から
// 親ディレクトリのパスを解決し、末尾がセパレータで終わるように正規化します。
func ResolveBaseURL(rawPath string) string {
	return urlpath.ResolveBaseURL(rawPath)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "out/images/render.png", 2 -> "out/images/render_2.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// ResolveIndexedOutputPath は baseDir/fileName を解決し、index が1以上なら連番を付けます。
func ResolveIndexedOutputPath(baseDir, fileName string, index int) (string, error) {
	p, err := ResolveOutputPath(baseDir, fileName)
	if err != nil {
		return "", err
	}
	if index < 1 {
		return p, nil
	}
	return GenerateIndexedPath(p, index)
}

// ExtensionForMime は画像の MIME タイプに対応する拡張子を返します。不明な場合は ".png" です。
func ExtensionForMime(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// WithExtension はファイル名の拡張子を差し替えます。
func WithExtension(fileName, ext string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ext
}

// createIndexedRegex は、ファイル名に基づきインデックス付きファイル用の正規表現を生成します。
// 例: "render.png" -> ^render_\d+\.png$
func createIndexedRegex(fileName string) *regexp.Regexp {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)

	pattern := fmt.Sprintf(`^%s_\d+%s$`, regexp.QuoteMeta(baseName), regexp.QuoteMeta(ext))
	return regexp.MustCompile(pattern)
}
