package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/forensiq/forensiq/internal/model"
)

// PostgresSessionRepo はPostgreSQLを使用したセッションリポジトリ。
// セッションの発行・破棄はIdPが行うため、本リポジトリは読み取り専用。
type PostgresSessionRepo struct {
	db *sql.DB
}

// NewPostgresSessionRepo はPostgresSessionRepoを生成する。
func NewPostgresSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db}
}

// FindByToken はセッショントークンでセッションを取得する。
// 期限切れまたは存在しない場合はnilを返す。
func (r *PostgresSessionRepo) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	session := &model.Session{}
	var ipAddress, userAgent sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, token, user_id, expires_at, ip_address, user_agent, created_at
		 FROM sessions
		 WHERE token = $1 AND expires_at > now()`,
		token,
	).Scan(&session.ID, &session.Token, &session.UserID, &session.ExpiresAt,
		&ipAddress, &userAgent, &session.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	session.IPAddress = ipAddress.String
	session.UserAgent = userAgent.String

	return session, nil
}

// compile-time interface check
var _ SessionRepository = (*PostgresSessionRepo)(nil)
