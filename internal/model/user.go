// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーのロールを表す閉じた列挙型。
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleAnalyst      Role = "analyst"
	RoleInvestigator Role = "investigator"
)

// IsValid はロールが列挙に含まれる値かを検証する。
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleInvestigator:
		return true
	}
	return false
}

// User はサービス利用ユーザーを表す。
// ユーザーのライフサイクルはIdPが所有し、本サービスが行う変更は
// オンボーディング時のOrgIDの1回限りの更新のみ。
type User struct {
	ID            string
	Name          string
	Email         string
	EmailVerified bool
	OrgID         *string // 未所属の場合はnil。所属は高々1組織。
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasOrg はユーザーが組織に所属しているかを返す。
func (u *User) HasOrg() bool {
	return u != nil && u.OrgID != nil && *u.OrgID != ""
}

// Session はIdPが発行したログインセッションを表す。
// 本サービスからは読み取り専用。期限切れ判定はストア側で行う。
type Session struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}
