package submission

// State は送信フローの状態です。
type State int

const (
	StateIdle State = iota
	StateValidating
	// StateInvalid は入力検証に失敗してエラーを表示している待機状態です。
	StateInvalid
	StatePending
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "error"
	default:
		return "unknown"
	}
}

// terminal は新しいユーザー操作で idle に戻れる状態かどうかです。
func (s State) terminal() bool {
	return s == StateInvalid || s == StateSuccess || s == StateFailed
}
