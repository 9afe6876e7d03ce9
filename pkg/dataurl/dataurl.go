// Package dataurl は "data:<mime>;base64,<payload>" 形式のエンコードとデコードを提供します。
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	scheme       = "data:"
	base64Marker = ";base64"
)

// ErrMalformed はデータURLとして解釈できない入力に対するエラーです。
var ErrMalformed = errors.New("malformed data url")

// Encode はバイト列を base64 データURLに変換します。
func Encode(mimeType string, data []byte) string {
	return scheme + mimeType + base64Marker + "," + base64.StdEncoding.EncodeToString(data)
}

// Decode はデータURLから MIME タイプとペイロードを取り出します。
// 空文字列や base64 でない形式は ErrMalformed を返します。
func Decode(s string) (string, []byte, error) {
	if !strings.HasPrefix(s, scheme) {
		return "", nil, fmt.Errorf("%w: missing %q prefix", ErrMalformed, scheme)
	}
	header, payload, ok := strings.Cut(s[len(scheme):], ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrMalformed)
	}

	mimeType, isBase64 := strings.CutSuffix(header, base64Marker)
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrMalformed)
	}
	// "image/png;charset=..." のような追加パラメータは落とす
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if mimeType == "" {
		mimeType = "text/plain"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	return mimeType, data, nil
}
