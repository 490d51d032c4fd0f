package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/forensiq/forensiq/internal/model"
)

func testOrganization() *model.Organization {
	return &model.Organization{
		ID:                 "org-1",
		Name:               "Acme",
		Type:               model.OrgTypeEnterprise,
		Size:               model.OrgSizeLarge,
		Region:             model.DefaultRegion,
		RetentionDays:      model.DefaultRetentionDays,
		SigningMode:        model.DefaultSigningMode,
		TimestampAuthority: model.DefaultTimestampAuthority,
		CreatedAt:          time.Now(),
	}
}

// 組織作成とユーザー紐付けが同一トランザクションでコミットされることを検証
func TestPostgresOrgRepo_CreateWithOwner_CommitsBothWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	org := testOrganization()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO organizations`).
		WithArgs(org.ID, org.Name, "enterprise", "large", org.Region,
			org.RetentionDays, org.SigningMode, org.TimestampAuthority, org.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET org_id`).
		WithArgs(org.ID, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostgresOrgRepo(db)
	if err := repo.CreateWithOwner(context.Background(), org, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// ユーザーが既に所属済みの場合、組織作成ごとロールバックされることを検証
// （孤児組織を残さない）
func TestPostgresOrgRepo_CreateWithOwner_AlreadyAttached_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	org := testOrganization()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO organizations`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// org_idがNULLでないため条件付き更新は0行
	mock.ExpectExec(`UPDATE users SET org_id`).
		WithArgs(org.ID, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewPostgresOrgRepo(db)
	err = repo.CreateWithOwner(context.Background(), org, "user-1")
	if !errors.Is(err, ErrOrgAlreadyAttached) {
		t.Fatalf("error = %v, want ErrOrgAlreadyAttached", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// 組織のINSERTが失敗した場合、トランザクションがロールバックされることを検証
func TestPostgresOrgRepo_CreateWithOwner_InsertFails_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO organizations`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	repo := NewPostgresOrgRepo(db)
	err = repo.CreateWithOwner(context.Background(), testOrganization(), "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrOrgAlreadyAttached) {
		t.Fatalf("store failure should not be reported as ErrOrgAlreadyAttached: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// ユーザー紐付けのUPDATEが失敗した場合、組織作成ごとロールバックされることを検証
func TestPostgresOrgRepo_CreateWithOwner_LinkFails_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO organizations`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET org_id`).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	repo := NewPostgresOrgRepo(db)
	err = repo.CreateWithOwner(context.Background(), testOrganization(), "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// FindByIDが組織を正しくスキャンすることを検証
func TestPostgresOrgRepo_FindByID_ReturnsOrganization(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "type", "size", "region", "retention_days",
		"signing_mode", "timestamp_authority", "created_at",
	}).AddRow("org-1", "Acme", "enterprise", "large", "India - Central",
		365, "rsa4096", "rfc3161", now)

	mock.ExpectQuery(`SELECT id, name, type, size`).
		WithArgs("org-1").
		WillReturnRows(rows)

	repo := NewPostgresOrgRepo(db)
	org, err := repo.FindByID(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org == nil {
		t.Fatal("expected organization, got nil")
	}
	if org.Type != model.OrgTypeEnterprise {
		t.Errorf("type = %q, want %q", org.Type, model.OrgTypeEnterprise)
	}
	if org.RetentionDays != 365 {
		t.Errorf("retentionDays = %d, want 365", org.RetentionDays)
	}
}

// FindByIDが存在しない組織に対してnilを返すことを検証
func TestPostgresOrgRepo_FindByID_NotFound_ReturnsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, type, size`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "type", "size", "region", "retention_days",
			"signing_mode", "timestamp_authority", "created_at",
		}))

	repo := NewPostgresOrgRepo(db)
	org, err := repo.FindByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org != nil {
		t.Errorf("expected nil, got %+v", org)
	}
}
