// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/forensiq/forensiq/internal/model"
)

// ErrOrgAlreadyAttached はユーザーが既に組織に所属しているため
// 条件付き更新（org_idがNULLの場合のみ設定）が0行に終わったことを示す。
// 同一ユーザーの同時オンボーディングで敗者側が受け取る。
var ErrOrgAlreadyAttached = errors.New("user already belongs to an organization")

// UserRepository はユーザーデータの読み取りインターフェース。
// ユーザーのライフサイクルはIdPが所有するため、本サービスからの
// 書き込みはOrganizationRepository.CreateWithOwner経由のorg_id更新のみ。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// SessionRepository はIdPが発行したセッションの読み取りインターフェース。
type SessionRepository interface {
	// FindByToken はセッショントークンでセッションを取得する。
	// 期限切れまたは存在しない場合はnilを返す。
	FindByToken(ctx context.Context, token string) (*model.Session, error)
}

// OrganizationRepository は組織データの永続化インターフェース。
type OrganizationRepository interface {
	// FindByID は指定IDの組織を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Organization, error)

	// CreateWithOwner は組織の作成とユーザーのorg_id設定を
	// 同一トランザクションで実行する。ユーザーのorg_idがNULLの場合のみ
	// 設定し、既に設定済みの場合は全体をロールバックして
	// ErrOrgAlreadyAttachedを返す。孤児組織は残らない。
	CreateWithOwner(ctx context.Context, org *model.Organization, ownerUserID string) error
}
