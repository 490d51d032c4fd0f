// Package onboarding はテナント組織の作成とユーザー紐付けを提供する。
package onboarding

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/forensiq/forensiq/internal/model"
	"github.com/forensiq/forensiq/internal/repository"
)

// Profile はオンボーディングフォームから送信される組織プロフィール。
// 値はフォーム境界の生文字列のまま保持し、Onboardで閉じた列挙へ
// 変換・検証してから永続化層に渡す。
type Profile struct {
	Name string
	Type string
	Size string
}

// Service はオンボーディングトランザクションのビジネスロジックを提供する。
type Service struct {
	orgRepo repository.OrganizationRepository
}

// NewService はServiceを生成する。
func NewService(orgRepo repository.OrganizationRepository) *Service {
	return &Service{orgRepo: orgRepo}
}

// Onboard は組織を作成し、ユーザーを新組織に紐付ける。
// 成功時は新しい組織IDを返す。
//
// 呼び出し側はアクセスゲートを通過済みだが、セッション不在
// （userIDが空）はここでも独立した失敗として再検証する。
// 2つの書き込みは単一トランザクションで実行され、紐付けに失敗した
// 場合は組織作成ごとロールバックされる。
//
// 失敗はすべて*model.APIErrorとして返る:
// Unauthenticated / InvalidProfile / AlreadyOnboarded / PersistenceFailure。
func (s *Service) Onboard(ctx context.Context, userID string, profile Profile) (string, error) {
	// 1. セッション不在の再検証
	if userID == "" {
		return "", model.NewUnauthenticatedError()
	}

	// 2. プロフィールの検証（列挙外の値は永続化前に拒否する）
	orgType, orgSize, apiErr := validateProfile(profile)
	if apiErr != nil {
		return "", apiErr
	}

	// 3. 組織の構築（IDは作成後不変）
	org := &model.Organization{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(profile.Name),
		Type:               orgType,
		Size:               orgSize,
		Region:             model.DefaultRegion,
		RetentionDays:      model.DefaultRetentionDays,
		SigningMode:        model.DefaultSigningMode,
		TimestampAuthority: model.DefaultTimestampAuthority,
		CreatedAt:          time.Now(),
	}

	// 4. 組織作成＋ユーザー紐付け（単一トランザクション）
	if err := s.orgRepo.CreateWithOwner(ctx, org, userID); err != nil {
		if errors.Is(err, repository.ErrOrgAlreadyAttached) {
			slog.Warn("onboarding rejected: user already attached",
				slog.String("user_id", userID),
			)
			return "", model.NewAlreadyOnboardedError()
		}
		// 内部原因はログのみに記録し、クライアントには返さない
		slog.Error("onboarding transaction failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return "", model.NewPersistenceFailureError()
	}

	slog.Info("organization created",
		slog.String("org_id", org.ID),
		slog.String("org_type", string(org.Type)),
		slog.String("owner_user_id", userID),
	)

	return org.ID, nil
}

// validateProfile はプロフィールの各フィールドを検証し、
// 閉じた列挙型へ変換して返す。
func validateProfile(profile Profile) (model.OrgType, model.OrgSize, *model.APIError) {
	if strings.TrimSpace(profile.Name) == "" {
		return "", "", model.NewInvalidProfileError("name", "必須項目です")
	}
	if profile.Type == "" {
		return "", "", model.NewInvalidProfileError("type", "必須項目です")
	}
	if profile.Size == "" {
		return "", "", model.NewInvalidProfileError("size", "必須項目です")
	}

	orgType := model.OrgType(profile.Type)
	if !orgType.IsValid() {
		return "", "", model.NewInvalidProfileError("type", "許可されていない値です")
	}

	orgSize := model.OrgSize(profile.Size)
	if !orgSize.IsValid() {
		return "", "", model.NewInvalidProfileError("size", "許可されていない値です")
	}

	return orgType, orgSize, nil
}
