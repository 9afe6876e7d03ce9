package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-archviz-kit/pkg/asset"
	"github.com/shouni/go-archviz-kit/pkg/domain"
)

// Writer は成果物を保存します。remoteio.OutputWriter が満たします。
type Writer interface {
	Write(ctx context.Context, path string, r io.Reader, contentType string) error
}

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	// Index が1以上ならファイル名に連番を付けます（バッチ実行用）。
	Index int
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	ImagePath    string // 生成画像のパス
	SketchPath   string // 入力スケッチのパス
	MetadataPath string // パラメータ JSON のパス
}

// RenderPublisher は生成結果と入力スケッチを保存します。
type RenderPublisher struct {
	writer Writer
}

// NewRenderPublisher は RenderPublisher を作成します。
func NewRenderPublisher(writer Writer) *RenderPublisher {
	return &RenderPublisher{writer: writer}
}

// Publish は生成画像、入力スケッチ、メタデータ JSON を書き出します。
// 成功すると result.ImageURL に保存先が設定されます。
func (p *RenderPublisher) Publish(ctx context.Context, result *domain.GenerationResult, sketch []byte, opts Options) (PublishResult, error) {
	out := PublishResult{}
	if result == nil || len(result.Data) == 0 {
		return out, fmt.Errorf("保存する生成画像がありません")
	}

	// 1. 出力パスの解決
	imgDir, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultImageDir)
	if err != nil {
		return out, err
	}
	renderName := asset.WithExtension(asset.DefaultRenderFileName, asset.ExtensionForMime(result.MimeType))
	if out.ImagePath, err = asset.ResolveIndexedOutputPath(imgDir, renderName, opts.Index); err != nil {
		return out, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if out.MetadataPath, err = asset.ResolveIndexedOutputPath(opts.OutputDir, asset.DefaultMetadataFileName, opts.Index); err != nil {
		return out, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	// 2. 画像の保存
	if err := p.writer.Write(ctx, out.ImagePath, bytes.NewReader(result.Data), result.MimeType); err != nil {
		return out, fmt.Errorf("画像の書き込みに失敗しました %s: %w", out.ImagePath, err)
	}
	result.ImageURL = out.ImagePath

	if len(sketch) > 0 {
		if out.SketchPath, err = asset.ResolveIndexedOutputPath(imgDir, asset.DefaultSketchFileName, opts.Index); err != nil {
			return out, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}
		if err := p.writer.Write(ctx, out.SketchPath, bytes.NewReader(sketch), "image/png"); err != nil {
			return out, fmt.Errorf("スケッチの書き込みに失敗しました %s: %w", out.SketchPath, err)
		}
	}

	// 3. メタデータの書き出し
	meta, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return out, fmt.Errorf("メタデータのエンコードに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, out.MetadataPath, bytes.NewReader(meta), "application/json; charset=utf-8"); err != nil {
		return out, fmt.Errorf("メタデータの書き込みに失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "生成結果を保存しました", "image", out.ImagePath, "sketch", out.SketchPath, "metadata", out.MetadataPath)
	return out, nil
}
