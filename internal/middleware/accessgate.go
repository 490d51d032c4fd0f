// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/forensiq/forensiq/internal/access"
	"github.com/forensiq/forensiq/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userContextKey はリクエストコンテキストに解決済みユーザーを格納するためのキー。
var userContextKey = contextKey("user")

// SessionResolver はアクセスゲートが必要とするセッション解決インターフェース。
// 解決失敗は (nil, nil) に縮退させ、エラーを返さないこと。
type SessionResolver interface {
	Resolve(ctx context.Context, req *http.Request) (*model.User, *model.Session)
}

// DecisionRecorder はゲート判定のメトリクス記録インターフェース。
type DecisionRecorder interface {
	RecordGateDecision(category access.RouteCategory, decision access.Decision)
}

// NewAccessGateMiddleware はリクエストごとにセッションを1回だけ解決し、
// パス分類とアクセス判定を行うミドルウェアを返す。
//
// 判定の流れ: セッション解決 → パス分類 → Decide → 許可なら解決済み
// ユーザーをコンテキストに注入して続行、不許可なら302リダイレクト。
// 解決済みの値は明示的にDecideへ渡し、グローバルな状態には置かない。
// recorderはnil可（テスト用）。
func NewAccessGateMiddleware(resolver SessionResolver, recorder DecisionRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. セッション解決（失敗は未認証に縮退済み）
			user, sess := resolver.Resolve(r.Context(), r)
			hasSession := sess != nil && user != nil
			hasOrg := hasSession && user.HasOrg()

			// 2. パス分類と判定
			category := access.Classify(r.URL.Path)
			decision := access.Decide(hasSession, hasOrg, category)

			if recorder != nil {
				recorder.RecordGateDecision(category, decision)
			}

			// 3. リダイレクトまたは続行
			if !decision.Allow {
				http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
				return
			}

			if user != nil {
				ctx := context.WithValue(r.Context(), userContextKey, user)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext はリクエストコンテキストから解決済みユーザーを取得する。
// アクセスゲートを通過した認証済みリクエストでのみ有効。
func UserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// ContextWithUser はコンテキストにユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
