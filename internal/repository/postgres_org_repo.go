package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/forensiq/forensiq/internal/model"
)

// PostgresOrgRepo はPostgreSQLを使用した組織リポジトリ。
type PostgresOrgRepo struct {
	db *sql.DB
}

// NewPostgresOrgRepo はPostgresOrgRepoを生成する。
func NewPostgresOrgRepo(db *sql.DB) *PostgresOrgRepo {
	return &PostgresOrgRepo{db: db}
}

// FindByID は指定IDの組織を取得する。見つからない場合はnilを返す。
func (r *PostgresOrgRepo) FindByID(ctx context.Context, id string) (*model.Organization, error) {
	org := &model.Organization{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, size, region, retention_days,
		        signing_mode, timestamp_authority, created_at
		 FROM organizations WHERE id = $1`,
		id,
	).Scan(&org.ID, &org.Name, &org.Type, &org.Size, &org.Region,
		&org.RetentionDays, &org.SigningMode, &org.TimestampAuthority,
		&org.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find organization by ID: %w", err)
	}

	return org, nil
}

// CreateWithOwner は組織の作成とユーザーのorg_id設定を同一トランザクションで実行する。
//
// ユーザーへのorg_id設定は条件付き更新（org_idがNULLの場合のみ）で行い、
// 同一ユーザーの同時オンボーディングでも組織が二重に紐付くことはない。
// 更新が0行に終わった場合は全体をロールバックしてErrOrgAlreadyAttachedを
// 返すため、孤児組織は残らない。
func (r *PostgresOrgRepo) CreateWithOwner(ctx context.Context, org *model.Organization, ownerUserID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 組織を作成
	_, err = tx.ExecContext(ctx,
		`INSERT INTO organizations
		 (id, name, type, size, region, retention_days, signing_mode, timestamp_authority, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		org.ID, org.Name, string(org.Type), string(org.Size), org.Region,
		org.RetentionDays, org.SigningMode, org.TimestampAuthority, org.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert organization: %w", err)
	}

	// ユーザーに組織を紐付け（org_idがNULLの場合のみ）
	result, err := tx.ExecContext(ctx,
		`UPDATE users SET org_id = $1, updated_at = now()
		 WHERE id = $2 AND org_id IS NULL`,
		org.ID, ownerUserID,
	)
	if err != nil {
		return fmt.Errorf("failed to attach user to organization: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// 既に所属済み（または存在しないユーザー）: 組織作成ごとロールバック
		return ErrOrgAlreadyAttached
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// compile-time interface check
var _ OrganizationRepository = (*PostgresOrgRepo)(nil)
