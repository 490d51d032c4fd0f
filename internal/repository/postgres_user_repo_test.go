package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/forensiq/forensiq/internal/model"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresSessionRepoはSessionRepositoryインターフェースを満たすことを検証
func TestPostgresSessionRepo_ImplementsInterface(t *testing.T) {
	var _ SessionRepository = (*PostgresSessionRepo)(nil)
}

// PostgresOrgRepoはOrganizationRepositoryインターフェースを満たすことを検証
func TestPostgresOrgRepo_ImplementsInterface(t *testing.T) {
	var _ OrganizationRepository = (*PostgresOrgRepo)(nil)
}

// 組織未所属ユーザーのorg_id NULLがnilポインタにマッピングされることを検証
func TestPostgresUserRepo_FindByID_NullOrgID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "email_verified", "org_id", "role", "created_at", "updated_at",
	}).AddRow("user-1", "Asha", "asha@example.com", true, nil, "analyst", now, now)

	mock.ExpectQuery(`SELECT id, name, email`).
		WithArgs("user-1").
		WillReturnRows(rows)

	repo := NewPostgresUserRepo(db)
	user, err := repo.FindByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.HasOrg() {
		t.Error("user with NULL org_id should not have an org")
	}
	if user.Role != model.RoleAnalyst {
		t.Errorf("role = %q, want %q", user.Role, model.RoleAnalyst)
	}
}

// 組織所属ユーザーのorg_idがポインタとして取得されることを検証
func TestPostgresUserRepo_FindByID_WithOrgID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "email_verified", "org_id", "role", "created_at", "updated_at",
	}).AddRow("user-2", "Ravi", "ravi@example.com", true, "org-9", "admin", now, now)

	mock.ExpectQuery(`SELECT id, name, email`).
		WithArgs("user-2").
		WillReturnRows(rows)

	repo := NewPostgresUserRepo(db)
	user, err := repo.FindByID(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.HasOrg() {
		t.Fatal("expected user to have an org")
	}
	if *user.OrgID != "org-9" {
		t.Errorf("orgID = %q, want %q", *user.OrgID, "org-9")
	}
}

// 存在しないユーザーに対してnilが返ることを検証
func TestPostgresUserRepo_FindByID_NotFound_ReturnsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "email_verified", "org_id", "role", "created_at", "updated_at",
		}))

	repo := NewPostgresUserRepo(db)
	user, err := repo.FindByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil, got %+v", user)
	}
}

// 有効期限内のセッションがトークンで取得できることを検証
func TestPostgresSessionRepo_FindByToken_ReturnsSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "token", "user_id", "expires_at", "ip_address", "user_agent", "created_at",
	}).AddRow("sess-1", "tok-abc", "user-1", now.Add(time.Hour), "10.0.0.1", "curl/8", now)

	mock.ExpectQuery(`SELECT id, token, user_id`).
		WithArgs("tok-abc").
		WillReturnRows(rows)

	repo := NewPostgresSessionRepo(db)
	session, err := repo.FindByToken(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session == nil {
		t.Fatal("expected session, got nil")
	}
	if session.UserID != "user-1" {
		t.Errorf("userID = %q, want %q", session.UserID, "user-1")
	}
}

// 期限切れ・不存在のセッションに対してnilが返ることを検証
// （期限切れ判定はSQLのWHERE句で行われ、リポジトリはsql.ErrNoRowsを受け取る）
func TestPostgresSessionRepo_FindByToken_Expired_ReturnsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, token, user_id`).
		WithArgs("expired-token").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "token", "user_id", "expires_at", "ip_address", "user_agent", "created_at",
		}))

	repo := NewPostgresSessionRepo(db)
	session, err := repo.FindByToken(context.Background(), "expired-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil, got %+v", session)
	}
}
