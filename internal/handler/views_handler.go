package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forensiq/forensiq/internal/middleware"
	"github.com/forensiq/forensiq/internal/mockdata"
	"github.com/forensiq/forensiq/internal/model"
)

// Sanitizer はログ由来のテキストからHTMLを除去するインターフェース。
// ログスニペットは外部システムが生成した生文字列のため、
// 表示用レスポンスに載せる前に必ず無害化する。
type Sanitizer interface {
	Sanitize(input string) string
}

// ViewHandler はダッシュボード系ビューのHTTPハンドラー。
// データ取り込みパイプライン接続までは固定デモデータを返す。
type ViewHandler struct {
	sanitizer Sanitizer
}

// NewViewHandler はViewHandlerを生成する。
func NewViewHandler(sanitizer Sanitizer) *ViewHandler {
	return &ViewHandler{sanitizer: sanitizer}
}

// dashboardResponse はダッシュボードビューの表示データ。
type dashboardResponse struct {
	Stats   model.OrgStats    `json:"stats"`
	Sources []model.LogSource `json:"sources"`
	Audits  []model.Audit     `json:"audits"`
}

// Dashboard はダッシュボードの統計・ソース・監査の一覧を返す。
// GET /dashboard
func (h *ViewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, dashboardResponse{
		Stats:   mockdata.Stats(),
		Sources: mockdata.LogSources(),
		Audits:  mockdata.Audits(),
	})
}

// Sources はログソース一覧を返す。
// GET /sources
func (h *ViewHandler) Sources(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string][]model.LogSource{
		"sources": mockdata.LogSources(),
	})
}

// Audits は監査一覧を返す。
// GET /audits
func (h *ViewHandler) Audits(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string][]model.Audit{
		"audits": mockdata.Audits(),
	})
}

// auditDetailResponse は監査詳細ビューの表示データ。
type auditDetailResponse struct {
	Audit    model.Audit     `json:"audit"`
	Findings []model.Finding `json:"findings"`
}

// AuditDetail は監査と紐付く検出結果を返す。
// GET /audits/{id}
func (h *ViewHandler) AuditDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	audit, ok := mockdata.AuditByID(id)
	if !ok {
		middleware.WriteAPIError(w, model.NewNotFoundError("監査"))
		return
	}

	writeJSONResponse(w, http.StatusOK, auditDetailResponse{
		Audit:    audit,
		Findings: h.sanitizeFindings(mockdata.FindingsByAudit(id)),
	})
}

// AuditFindings は監査の検出結果一覧を返す。
// GET /audits/{id}/findings
func (h *ViewHandler) AuditFindings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := mockdata.AuditByID(id); !ok {
		middleware.WriteAPIError(w, model.NewNotFoundError("監査"))
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string][]model.Finding{
		"findings": h.sanitizeFindings(mockdata.FindingsByAudit(id)),
	})
}

// sanitizeFindings はログ由来のフィールドをすべて無害化したコピーを返す。
func (h *ViewHandler) sanitizeFindings(findings []model.Finding) []model.Finding {
	out := make([]model.Finding, len(findings))
	for i, f := range findings {
		f.Title = h.sanitizer.Sanitize(f.Title)
		f.Description = h.sanitizer.Sanitize(f.Description)

		lines := make([]model.LogLine, len(f.LogSnippet.Lines))
		for j, line := range f.LogSnippet.Lines {
			line.Raw = h.sanitizer.Sanitize(line.Raw)
			lines[j] = line
		}
		f.LogSnippet.Lines = lines

		timeline := make([]model.TimelineEvent, len(f.Timeline))
		for j, ev := range f.Timeline {
			ev.Event = h.sanitizer.Sanitize(ev.Event)
			timeline[j] = ev
		}
		f.Timeline = timeline

		out[i] = f
	}
	return out
}
