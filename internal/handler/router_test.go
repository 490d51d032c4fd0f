package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forensiq/forensiq/internal/middleware"
	"github.com/forensiq/forensiq/internal/model"
	"github.com/forensiq/forensiq/internal/onboarding"
)

// stubResolver は固定のユーザー・セッションを返すセッションリゾルバ。
type stubResolver struct {
	user    *model.User
	session *model.Session
}

func (s *stubResolver) Resolve(ctx context.Context, req *http.Request) (*model.User, *model.Session) {
	return s.user, s.session
}

type stubHealthChecker struct {
	err error
}

func (s *stubHealthChecker) PingContext(ctx context.Context) error {
	return s.err
}

func orgID(id string) *string {
	return &id
}

// newTestRouter はテスト用の依存を組み立てたルーターを返す。
func newTestRouter(t *testing.T, resolver middleware.SessionResolver, authProxy http.Handler) http.Handler {
	t.Helper()

	rl := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	t.Cleanup(rl.Stop)

	if authProxy == nil {
		authProxy = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}

	svc := &mockOnboardingService{
		onboardFn: func(ctx context.Context, userID string, profile onboarding.Profile) (string, error) {
			return "org-new", nil
		},
	}

	return NewRouter(&RouterDeps{
		Logger:            newTestLogger(),
		SessionResolver:   resolver,
		RateLimiter:       rl,
		CORSAllowedOrigin: "http://localhost:3000",

		OnboardingService: svc,
		Sanitizer:         passthroughSanitizer{},
		AuthProxy:         authProxy,
		HealthChecker:     &stubHealthChecker{},
	})
}

// TestRouter_AnonymousProtectedPath_RedirectsToAuth は未認証の保護パスが/authへ
// リダイレクトされることを検証する。
func TestRouter_AnonymousProtectedPath_RedirectsToAuth(t *testing.T) {
	router := newTestRouter(t, &stubResolver{}, nil)

	for _, path := range []string{"/dashboard", "/sources", "/audits", "/unknown/path"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusFound {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
			}
			if loc := w.Header().Get("Location"); loc != "/auth" {
				t.Errorf("Location = %q, want /auth", loc)
			}
		})
	}
}

// TestRouter_AnonymousPublicPaths_Allowed は未認証でも公開パスに到達できることを検証する。
func TestRouter_AnonymousPublicPaths_Allowed(t *testing.T) {
	router := newTestRouter(t, &stubResolver{}, nil)

	for _, path := range []string{"/", "/auth", "/auth/login"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
		})
	}
}

// TestRouter_HealthBypassesGate は/healthが未認証で到達できることを検証する。
func TestRouter_HealthBypassesGate(t *testing.T) {
	router := newTestRouter(t, &stubResolver{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

// TestRouter_MemberReachesDashboard は組織所属の認証済みユーザーが
// ダッシュボードに到達できることを検証する。
func TestRouter_MemberReachesDashboard(t *testing.T) {
	resolver := &stubResolver{
		user:    &model.User{ID: "user-1", OrgID: orgID("org-1"), Role: model.RoleAnalyst},
		session: &model.Session{ID: "sess-1", UserID: "user-1"},
	}
	router := newTestRouter(t, resolver, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body dashboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Stats.SourcesTotal != 6 {
		t.Errorf("stats.sourcesTotal = %d, want 6", body.Stats.SourcesTotal)
	}
}

// TestRouter_MemberOnOnboarding_RedirectsToDashboard は組織所属ユーザーが
// /onboardingからダッシュボードへ誘導されることを検証する。
func TestRouter_MemberOnOnboarding_RedirectsToDashboard(t *testing.T) {
	resolver := &stubResolver{
		user:    &model.User{ID: "user-1", OrgID: orgID("org-1")},
		session: &model.Session{ID: "sess-1", UserID: "user-1"},
	}
	router := newTestRouter(t, resolver, nil)

	req := httptest.NewRequest(http.MethodGet, "/onboarding", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
}

// TestRouter_UnaffiliatedSteeredToOnboarding は組織未所属ユーザーが
// どの画面からも/onboardingへ誘導されることを検証する。
func TestRouter_UnaffiliatedSteeredToOnboarding(t *testing.T) {
	resolver := &stubResolver{
		user:    &model.User{ID: "user-1"},
		session: &model.Session{ID: "sess-1", UserID: "user-1"},
	}
	router := newTestRouter(t, resolver, nil)

	for _, path := range []string{"/dashboard", "/", "/api/auth/get-session", "/auth"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusFound {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
			}
			if loc := w.Header().Get("Location"); loc != "/onboarding" {
				t.Errorf("Location = %q, want /onboarding", loc)
			}
		})
	}
}

// TestRouter_UnaffiliatedCanOpenOnboarding は組織未所属ユーザーが
// オンボーディングフォームを開けることを検証する。
func TestRouter_UnaffiliatedCanOpenOnboarding(t *testing.T) {
	resolver := &stubResolver{
		user:    &model.User{ID: "user-1"},
		session: &model.Session{ID: "sess-1", UserID: "user-1"},
	}
	router := newTestRouter(t, resolver, nil)

	req := httptest.NewRequest(http.MethodGet, "/onboarding", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
}

// TestRouter_APIForwardedToProxy は/api配下がアップストリームへ転送されることを検証する。
func TestRouter_APIForwardedToProxy(t *testing.T) {
	var gotPath string
	proxy := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusTeapot)
	})
	router := newTestRouter(t, &stubResolver{}, proxy)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/get-session", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
	if gotPath != "/api/auth/get-session" {
		t.Errorf("proxied path = %q, want /api/auth/get-session", gotPath)
	}
}

// TestRouter_APIPostSkipsCSRF は/api配下のPOSTがCSRF検証なしで転送されることを検証する。
func TestRouter_APIPostSkipsCSRF(t *testing.T) {
	proxy := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router := newTestRouter(t, &stubResolver{}, proxy)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-in/email", strings.NewReader("{}"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

// TestRouter_OnboardingPostRequiresCSRF はフォームPOSTがCSRFトークンなしで
// 拒否されることを検証する。
func TestRouter_OnboardingPostRequiresCSRF(t *testing.T) {
	resolver := &stubResolver{
		user:    &model.User{ID: "user-1"},
		session: &model.Session{ID: "sess-1", UserID: "user-1"},
	}
	router := newTestRouter(t, resolver, nil)

	req := httptest.NewRequest(http.MethodPost, "/onboarding",
		strings.NewReader(`{"name":"Acme","type":"bfsi","size":"large"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// TestRouter_OnboardingPostWithCSRF_Succeeds はCSRFトークン付きPOSTが成功することを検証する。
func TestRouter_OnboardingPostWithCSRF_Succeeds(t *testing.T) {
	resolver := &stubResolver{
		user:    &model.User{ID: "user-1"},
		session: &model.Session{ID: "sess-1", UserID: "user-1"},
	}
	router := newTestRouter(t, resolver, nil)

	// GETでCSRFトークンCookieを取得
	getReq := httptest.NewRequest(http.MethodGet, "/onboarding", nil)
	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, getReq)

	var csrfToken string
	for _, c := range getW.Result().Cookies() {
		if c.Name == "csrf_token" {
			csrfToken = c.Value
		}
	}
	if csrfToken == "" {
		t.Fatal("expected csrf_token cookie from GET response")
	}

	req := httptest.NewRequest(http.MethodPost, "/onboarding",
		strings.NewReader(`{"name":"Acme","type":"bfsi","size":"large"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", csrfToken)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: csrfToken})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var body onboardingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.OrganizationID != "org-new" {
		t.Errorf("organizationId = %q, want org-new", body.OrganizationID)
	}
}

// TestRouter_AuthenticatedUnknownPath_Returns404 は組織所属ユーザーの
// 未定義パスがゲート通過後に404になることを検証する。
func TestRouter_AuthenticatedUnknownPath_Returns404(t *testing.T) {
	resolver := &stubResolver{
		user:    &model.User{ID: "user-1", OrgID: orgID("org-1")},
		session: &model.Session{ID: "sess-1", UserID: "user-1"},
	}
	router := newTestRouter(t, resolver, nil)

	req := httptest.NewRequest(http.MethodGet, "/no/such/page", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// TestRouter_SecurityHeadersApplied はセキュリティヘッダーが全応答に付くことを検証する。
func TestRouter_SecurityHeadersApplied(t *testing.T) {
	router := newTestRouter(t, &stubResolver{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

// newTestLogger はテスト出力を汚さない破棄ロガーを返す。
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
