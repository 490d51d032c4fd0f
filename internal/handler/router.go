package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forensiq/forensiq/internal/middleware"
	"github.com/forensiq/forensiq/internal/model"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	SessionResolver   middleware.SessionResolver
	DecisionRecorder  middleware.DecisionRecorder
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string
	CSRFConfig        middleware.CSRFConfig

	// オンボーディング
	OnboardingService  OnboardingServiceInterface
	OnboardingRecorder OutcomeRecorder

	// ビュー
	Sanitizer Sanitizer

	// IdPパススルー
	AuthProxy http.Handler

	// 運用エンドポイント
	HealthChecker  HealthChecker
	MetricsHandler http.Handler
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → AccessGate → CSRF → RateLimit(General)
//
// 運用エンドポイント（/health, /metrics）はアクセスゲートの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))

	// --- 運用エンドポイント（ゲート対象外） ---
	healthHandler := NewHealthHandler(deps.HealthChecker)
	r.Get("/health", healthHandler.Health)
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- ゲート配下の全ルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAccessGateMiddleware(deps.SessionResolver, deps.DecisionRecorder))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		publicHandler := NewPublicHandler()
		onboardingHandler := NewOnboardingHandler(deps.OnboardingService, deps.OnboardingRecorder)
		viewHandler := NewViewHandler(deps.Sanitizer)

		// 公開ページ
		r.Get("/", publicHandler.Landing)

		// 認証ページ（操作自体はIdPのAPIが担う）
		r.Get("/auth", publicHandler.AuthPage)
		r.Get("/auth/*", publicHandler.AuthPage)

		// IdPパススルー
		r.Handle("/api", deps.AuthProxy)
		r.Handle("/api/*", deps.AuthProxy)

		// オンボーディング（POSTは専用レート制限を追加）
		r.Get("/onboarding", onboardingHandler.ShowForm)
		r.With(deps.RateLimiter.OnboardingMiddleware()).Post("/onboarding", onboardingHandler.Submit)

		// ダッシュボードビュー
		r.Get("/dashboard", viewHandler.Dashboard)
		r.Get("/sources", viewHandler.Sources)
		r.Route("/audits", func(r chi.Router) {
			r.Get("/", viewHandler.Audits)
			r.Get("/{id}", viewHandler.AuditDetail)
			r.Get("/{id}/findings", viewHandler.AuditFindings)
		})

		// 未定義パスもゲートを通してから404を返す
		r.HandleFunc("/*", func(w http.ResponseWriter, req *http.Request) {
			middleware.WriteAPIError(w, model.NewNotFoundError("ページ"))
		})
	})

	return r
}
