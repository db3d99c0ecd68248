// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, upstream, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidInput           = "INVALID_INPUT"
	ErrCodeNotImplemented         = "NOT_IMPLEMENTED"
	ErrCodeFetchFailed            = "FETCH_FAILED"
	ErrCodeParseFailed            = "PARSE_FAILED"
	ErrCodeSSRFBlocked            = "SSRF_BLOCKED"
	ErrCodeNowPlayingNotAvailable = "NOW_PLAYING_NOT_AVAILABLE"
)

// NewInvalidInputError は不正な入力値エラーを生成する。
// 問題のあった値をメッセージに含める。ネットワーク呼び出しの前に検出する。
func NewInvalidInputError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidInput,
		Message:  fmt.Sprintf("不正な入力値です: %s", reason),
		Category: "validation",
		Action:   "パラメータを確認して再度お試しください。",
	}
}

// NewInvalidURLError は無効なURLエラーを生成する。
func NewInvalidURLError(rawURL string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidInput,
		Message:  fmt.Sprintf("無効なURLです: %s", rawURL),
		Category: "validation",
		Action:   "正しいURL形式（http:// または https:// で始まるURL）を指定してください。",
	}
}

// NewNotImplementedError は未実装機能エラーを生成する。
// 不正入力と区別し、境界層が501を返せるようにする。
func NewNotImplementedError(feature string) *APIError {
	return &APIError{
		Code:     ErrCodeNotImplemented,
		Message:  fmt.Sprintf("この機能は未実装です: %s", feature),
		Category: "system",
		Action:   "対応している別の機能をご利用ください。",
	}
}

// NewFetchFailedError は上流フェッチ失敗エラーを生成する。
// 診断のため元のステータス・メッセージを保持し、リトライはしない。
func NewFetchFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeFetchFailed,
		Message:  fmt.Sprintf("コンテンツの取得に失敗しました: %s", reason),
		Category: "upstream",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewParseFailedError はドキュメント全体のパース失敗エラーを生成する。
// 個別アイテムのパース失敗はスキップ・ログ記録で回復するため、ここには来ない。
func NewParseFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeParseFailed,
		Message:  fmt.Sprintf("コンテンツの解析に失敗しました: %s", reason),
		Category: "upstream",
		Action:   "取得元の形式が正しいか確認してください。",
	}
}

// NewSSRFBlockedError はSSRFブロックエラーを生成する。
func NewSSRFBlockedError() *APIError {
	return &APIError{
		Code:     ErrCodeSSRFBlocked,
		Message:  "セキュリティポリシーにより、指定されたURLへのアクセスがブロックされました。",
		Category: "validation",
		Action:   "公開されているWebサイトのURLを指定してください。",
	}
}

// NewNowPlayingNotAvailableError は番組情報が取得できない場合のエラーを生成する。
func NewNowPlayingNotAvailableError() *APIError {
	return &APIError{
		Code:     ErrCodeNowPlayingNotAvailable,
		Message:  "現在放送中の番組情報は取得できません。",
		Category: "upstream",
		Action:   "番組表連携の実装後にご利用いただけます。",
	}
}
