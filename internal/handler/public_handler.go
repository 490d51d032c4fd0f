package handler

import (
	"net/http"
)

// PublicHandler は認証不要の公開ページのHTTPハンドラー。
type PublicHandler struct{}

// NewPublicHandler はPublicHandlerを生成する。
func NewPublicHandler() *PublicHandler {
	return &PublicHandler{}
}

// landingResponse はランディングページの表示データ。
type landingResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Links       map[string]string `json:"links"`
}

// Landing はランディングページを返す。
// GET /
func (h *PublicHandler) Landing(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, landingResponse{
		Name:        "ForensIQ",
		Description: "改ざん検知可能なログ封印とフォレンジック監査のダッシュボード",
		Links: map[string]string{
			"signIn":    "/auth",
			"dashboard": "/dashboard",
		},
	})
}

// authPageResponse は認証ページの表示データ。
// 実際の認証操作はIdPのAPI（/api/auth/*）が担う。
type authPageResponse struct {
	Endpoints map[string]string `json:"endpoints"`
}

// AuthPage はサインイン・サインアップページを返す。
// GET /auth および GET /auth/*
func (h *PublicHandler) AuthPage(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, authPageResponse{
		Endpoints: map[string]string{
			"signIn":  "/api/auth/sign-in/email",
			"signUp":  "/api/auth/sign-up/email",
			"signOut": "/api/auth/sign-out",
			"session": "/api/auth/get-session",
		},
	})
}
