package generator

import (
	"time"

	"github.com/shouni/go-http-kit/httpkit"
)

// NewAPIHTTPClient は生成 API 向けの httpkit クライアントを作成します。
// API のベースURLは利用者の入力ではなく運用側の設定なので、ループバックや
// プライベートアドレスへの接続を拒否するネットワーク検証は無効にします。
func NewAPIHTTPClient(timeout time.Duration) *httpkit.Client {
	return httpkit.New(timeout, httpkit.WithSkipNetworkValidation(true))
}
