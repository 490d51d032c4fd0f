package access

// リダイレクト先のパス。
const (
	PathAuth       = "/auth"
	PathOnboarding = "/onboarding"
	PathDashboard  = "/dashboard"
)

// Decision はアクセス可否判定の結果を表す。
// Allowがtrueの場合は後続ハンドラーに処理を継続し、
// falseの場合はRedirectToへ302リダイレクトする。
type Decision struct {
	Allow      bool
	RedirectTo string
}

// allow は許可判定を返す。
func allow() Decision {
	return Decision{Allow: true}
}

// redirect は指定パスへのリダイレクト判定を返す。
func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Decide はセッション有無・組織所属有無・ルートカテゴリから
// アクセス可否を判定する。
//
// 2つの独立した保証を実現する:
//   - 未認証ユーザーは公開ページ・認証ページ・APIパススルー以外に
//     到達できない（APIの認可はIdPハンドラーが行う）。
//   - 認証済みでも組織未所属のユーザーはオンボーディングと認証ページ
//     以外に到達できず、所属済みユーザーは認証・オンボーディングから
//     ダッシュボードへ誘導される。
//
// 全域関数であり、いかなる入力に対してもちょうど1つの判定を返す。
// 失敗しない。セッション解決の失敗はこの関数に到達する前に
// hasSession=falseへ縮退させること（フェイルクローズ）。
func Decide(hasSession, hasOrg bool, category RouteCategory) Decision {
	if !hasSession {
		// 未認証: 公開・認証・APIのみ許可し、それ以外はログインへ。
		switch category {
		case CategoryAuth, CategoryPublic, CategoryAPI:
			return allow()
		default:
			return redirect(PathAuth)
		}
	}

	if hasOrg {
		// 所属済みユーザーは認証・オンボーディングに用がない。
		switch category {
		case CategoryOnboarding, CategoryAuth:
			return redirect(PathDashboard)
		default:
			return allow()
		}
	}

	// 認証済み・未所属: オンボーディングへ誘導する。
	switch category {
	case CategoryOnboarding:
		return allow()
	default:
		return redirect(PathOnboarding)
	}
}
