package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/forensiq/forensiq/internal/middleware"
	"github.com/forensiq/forensiq/internal/model"
	"github.com/forensiq/forensiq/internal/onboarding"
)

// OnboardingServiceInterface はオンボーディングハンドラーが必要とするサービスインターフェース。
type OnboardingServiceInterface interface {
	// Onboard は組織を作成しユーザーをオーナーとして紐付ける。
	// 成功時は作成した組織IDを返す。
	Onboard(ctx context.Context, userID string, profile onboarding.Profile) (string, error)
}

// OutcomeRecorder はオンボーディング結果のメトリクス記録のインターフェースを定義する。
type OutcomeRecorder interface {
	RecordOnboardingOutcome(outcome string)
}

// noopOutcomeRecorder はメトリクス未接続時のフォールバック。
type noopOutcomeRecorder struct{}

func (noopOutcomeRecorder) RecordOnboardingOutcome(outcome string) {}

// OnboardingHandler はテナントオンボーディングのHTTPハンドラー。
type OnboardingHandler struct {
	service  OnboardingServiceInterface
	recorder OutcomeRecorder
}

// NewOnboardingHandler はOnboardingHandlerを生成する。
// recorderがnilの場合はメトリクス記録を行わない。
func NewOnboardingHandler(service OnboardingServiceInterface, recorder OutcomeRecorder) *OnboardingHandler {
	if recorder == nil {
		recorder = noopOutcomeRecorder{}
	}
	return &OnboardingHandler{
		service:  service,
		recorder: recorder,
	}
}

// onboardingFormResponse はオンボーディングフォームの選択肢と既定値。
type onboardingFormResponse struct {
	OrganizationTypes []model.OrgType    `json:"organizationTypes"`
	OrganizationSizes []model.OrgSize    `json:"organizationSizes"`
	Defaults          onboardingDefaults `json:"defaults"`
}

type onboardingDefaults struct {
	Region             string `json:"region"`
	RetentionDays      int    `json:"retentionDays"`
	SigningMode        string `json:"signingMode"`
	TimestampAuthority string `json:"timestampAuthority"`
}

// onboardingRequest はオンボーディングフォームの送信内容。
type onboardingRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
}

// onboardingResponse はオンボーディング成功時のレスポンス。
type onboardingResponse struct {
	OrganizationID string `json:"organizationId"`
	RedirectTo     string `json:"redirectTo"`
}

// ShowForm はオンボーディングフォームのメタデータを返す。
// GET /onboarding
func (h *OnboardingHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, onboardingFormResponse{
		OrganizationTypes: model.OrgTypes,
		OrganizationSizes: model.OrgSizes,
		Defaults: onboardingDefaults{
			Region:             model.DefaultRegion,
			RetentionDays:      model.DefaultRetentionDays,
			SigningMode:        model.DefaultSigningMode,
			TimestampAuthority: model.DefaultTimestampAuthority,
		},
	})
}

// Submit は組織プロフィールを受け取りオンボーディングを実行する。
// POST /onboarding
// JSONボディとHTMLフォームの両方を受け付ける。
func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseOnboardingRequest(r)
	if apiErr != nil {
		h.recorder.RecordOnboardingOutcome("invalid_profile")
		middleware.WriteAPIError(w, apiErr)
		return
	}

	// ゲートを通過していればユーザーはコンテキストに入っている。
	// 入っていない場合は空IDのままサービス層の認証チェックに委ねる。
	userID := ""
	if user, err := middleware.UserFromContext(r.Context()); err == nil {
		userID = user.ID
	}

	orgID, err := h.service.Onboard(r.Context(), userID, onboarding.Profile{
		Name: req.Name,
		Type: req.Type,
		Size: req.Size,
	})
	if err != nil {
		h.recorder.RecordOnboardingOutcome(outcomeForError(err))
		handleServiceError(w, err)
		return
	}

	h.recorder.RecordOnboardingOutcome("success")
	writeJSONResponse(w, http.StatusCreated, onboardingResponse{
		OrganizationID: orgID,
		RedirectTo:     "/dashboard",
	})
}

// parseOnboardingRequest はJSONまたはフォームエンコードの送信内容を解析する。
func parseOnboardingRequest(r *http.Request) (*onboardingRequest, *model.APIError) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		var req onboardingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, model.NewInvalidProfileError("body", "JSONの解析に失敗しました")
		}
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, model.NewInvalidProfileError("body", "フォームの解析に失敗しました")
	}
	return &onboardingRequest{
		Name: r.FormValue("name"),
		Type: r.FormValue("type"),
		Size: r.FormValue("size"),
	}, nil
}

// outcomeForError はサービスエラーをメトリクス用の結果ラベルに変換する。
func outcomeForError(err error) string {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		return "failure"
	}
	switch apiErr.Code {
	case model.ErrCodeAlreadyOnboarded:
		return "conflict"
	case model.ErrCodeInvalidProfile:
		return "invalid_profile"
	case model.ErrCodeUnauthenticated:
		return "unauthenticated"
	default:
		return "failure"
	}
}
