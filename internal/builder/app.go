package builder

import (
	"github.com/shouni/go-archviz-kit/internal/config"
	"github.com/shouni/go-archviz-kit/pkg/domain"
	"github.com/shouni/go-archviz-kit/pkg/i18n"

	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config         // Configは、環境変数とフラグから組み立てた設定です。
	Options    config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です。
	Reader     remoteio.InputReader   // Readerは、スケッチやカタログの読み込みに使用する入力元です。
	Writer     remoteio.OutputWriter  // Writerは、生成画像を保存するための出力先です。
	Localizer  *i18n.Localizer        // Localizerは、利用者に見せるエラーメッセージの翻訳です。
	Catalog    domain.StyleCatalog    // Catalogは、選択可能な建築様式の一覧です。
	httpClient *httpkit.Client        // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient *httpkit.Client,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
	catalog domain.StyleCatalog,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		Reader:     reader,
		Writer:     writer,
		Localizer:  i18n.New(cfg.Lang),
		Catalog:    catalog,
		httpClient: httpClient,
	}
}

// HTTPClient は共通の HTTP クライアントを返します。
func (a *AppContext) HTTPClient() *httpkit.Client {
	return a.httpClient
}
