// Package access はリクエストパスの分類とアクセス可否判定を提供する。
//
// ClassifyとDecideはどちらも純粋な全域関数であり、I/Oを行わず、
// エラーも返さない。任意の数のリクエストから同時に呼び出して安全。
package access

import "strings"

// RouteCategory はリクエストパスの粗い分類を表す。
// アクセス制御の扱いを決めるためだけに使用され、永続化されない。
type RouteCategory string

const (
	// CategoryPublic は公開ランディングページ（"/"そのもの）。
	CategoryPublic RouteCategory = "public"
	// CategoryAuth は認証ページ（/auth配下）。
	CategoryAuth RouteCategory = "auth"
	// CategoryOnboarding はオンボーディングフロー（/onboarding配下）。
	CategoryOnboarding RouteCategory = "onboarding"
	// CategoryAPI はIdPへのパススルーAPI（/api配下）。
	// 認可はIdPハンドラー側に委譲される。
	CategoryAPI RouteCategory = "api"
	// CategoryProtected は上記いずれにも該当しないルート（既定で保護）。
	CategoryProtected RouteCategory = "protected"
)

// Classify はリクエストパスをRouteCategoryに分類する。
// プレフィックスは互いに素であるため、任意のパスはちょうど1つの
// カテゴリに写像される。副作用なし。
func Classify(path string) RouteCategory {
	switch {
	case strings.HasPrefix(path, "/auth"):
		return CategoryAuth
	case strings.HasPrefix(path, "/onboarding"):
		return CategoryOnboarding
	case strings.HasPrefix(path, "/api"):
		return CategoryAPI
	case path == "/":
		return CategoryPublic
	default:
		return CategoryProtected
	}
}
