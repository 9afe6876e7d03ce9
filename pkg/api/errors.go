package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized は 401 応答を受けてセッションを破棄したことを表します。
var ErrUnauthorized = errors.New("unauthorized: please log in")

// StatusError は 2xx 以外の応答です。
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap は 401 の場合に ErrUnauthorized として判定できるようにします。
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// StatusCode は err が StatusError を含んでいればそのステータスを返します。
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
