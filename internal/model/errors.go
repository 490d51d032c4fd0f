// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, onboarding, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeInvalidProfile     = "INVALID_PROFILE"
	ErrCodeAlreadyOnboarded   = "ALREADY_ONBOARDED"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
	ErrCodeNotFound           = "NOT_FOUND"
)

// NewUnauthenticatedError は有効なセッションが存在しない場合のエラーを生成する。
func NewUnauthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthenticated,
		Message:  "有効なセッションがありません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewInvalidProfileError は組織プロフィールの検証エラーを生成する。
// fieldには不正だったフィールド名を指定する。
func NewInvalidProfileError(field, reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidProfile,
		Message:  fmt.Sprintf("組織プロフィールが不正です: %s（%s）", field, reason),
		Category: "validation",
		Action:   "入力内容を確認して再度送信してください。",
	}
}

// NewAlreadyOnboardedError はユーザーが既に組織に所属している場合のエラーを生成する。
// 同一ユーザーの同時オンボーディングで敗者側が受け取る拒否応答にも使用される。
func NewAlreadyOnboardedError() *APIError {
	return &APIError{
		Code:     ErrCodeAlreadyOnboarded,
		Message:  "既に組織に所属しています。ユーザーが所属できる組織は1つだけです。",
		Category: "onboarding",
		Action:   "ダッシュボードに移動してください。",
	}
}

// NewPersistenceFailureError はストアへの書き込み失敗エラーを生成する。
// 内部原因はログにのみ記録し、このメッセージには含めない。
func NewPersistenceFailureError() *APIError {
	return &APIError{
		Code:     ErrCodePersistenceFailure,
		Message:  "組織の作成に失敗しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewNotFoundError はリソースが見つからない場合のエラーを生成する。
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  fmt.Sprintf("指定されたリソースが見つかりません: %s", resource),
		Category: "validation",
		Action:   "IDを確認してください。",
	}
}
