// Package session はリクエストからのセッション解決を提供する。
//
// セッションの発行・更新・破棄はIdPの責務であり、本パッケージは
// IdPと共有するストアに対する読み取り専用のルックアップだけを行う。
package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/forensiq/forensiq/internal/model"
	"github.com/forensiq/forensiq/internal/repository"
)

// DefaultCookieName はIdPが発行するセッショントークンCookieの既定名。
const DefaultCookieName = "session_token"

// Resolver はリクエストヘッダーからユーザーとセッションを解決する。
//
// 解決は冪等で、リクエストごとに安全に呼び出せる。失敗は常に
// 「セッションなし」へ縮退させ、呼び出し側にエラーを返さない
// （フェイルクローズ。アクセス判定は最も制限的な側に倒れる）。
type Resolver struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	cookieName  string
}

// NewResolver はResolverを生成する。
// cookieNameが空の場合はDefaultCookieNameを使用する。
func NewResolver(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, cookieName string) *Resolver {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Resolver{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		cookieName:  cookieName,
	}
}

// Resolve はリクエストのCookieからセッションとユーザーを解決する。
//
// Cookie欠落、期限切れセッション、ストア障害、ユーザー行の欠落は
// いずれも (nil, nil) を返す。ストア障害のみサーバー側にログを残す。
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (*model.User, *model.Session) {
	cookie, err := req.Cookie(r.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	sess, err := r.sessionRepo.FindByToken(ctx, cookie.Value)
	if err != nil {
		// ストア障害は未認証として扱う（フェイルクローズ）
		slog.Error("session lookup failed",
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	if sess == nil {
		return nil, nil
	}

	user, err := r.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		slog.Error("user lookup failed",
			slog.String("session_id", sess.ID),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	if user == nil {
		// セッションはあるがユーザー行がない（IdP側で削除済み等）
		slog.Warn("session without user row",
			slog.String("session_id", sess.ID),
			slog.String("user_id", sess.UserID),
		)
		return nil, nil
	}

	return user, sess
}
