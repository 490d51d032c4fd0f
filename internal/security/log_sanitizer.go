// Package security はアプリケーションのセキュリティ機能を提供する。
//
// LogSanitizerService は検出結果に添付されるログスニペットや説明文を
// API応答前にサニタイズする。ログ行は攻撃者が内容を制御できる
// 攻撃者由来データであり、そのままUIに流すと格納型XSSの温床になる。
// bluemondayライブラリの許可リストベースのポリシーでHTMLを全て除去し、
// プレーンテキストのみを通過させる。
package security

import "github.com/microcosm-cc/bluemonday"

// LogSanitizerService はログ由来コンテンツのサニタイズ機能のインターフェースを定義する。
type LogSanitizerService interface {
	// Sanitize は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// logSanitizer はLogSanitizerServiceの実装。
// bluemondayのStrictPolicy（全タグ除去）を保持し、
// スレッドセーフにサニタイズ処理を行う。
type logSanitizer struct {
	policy *bluemonday.Policy
}

// NewLogSanitizer はLogSanitizerServiceの新しいインスタンスを生成する。
// ログ行にHTMLが正当に含まれるケースは存在しないため、
// 許可タグなしのStrictPolicyを使用する。
func NewLogSanitizer() *logSanitizer {
	return &logSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
func (s *logSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return s.policy.Sanitize(raw)
}

// compile-time interface check
var _ LogSanitizerService = (*logSanitizer)(nil)
