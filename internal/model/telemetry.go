package model

import "time"

// TrustLevel はログソースの信頼レベルを表す閉じた列挙型。
type TrustLevel string

const (
	TrustLevelHigh   TrustLevel = "High"
	TrustLevelMedium TrustLevel = "Medium"
	TrustLevelLow    TrustLevel = "Low"
)

// IsValid は信頼レベルが列挙に含まれる値かを検証する。
func (l TrustLevel) IsValid() bool {
	switch l {
	case TrustLevelHigh, TrustLevelMedium, TrustLevelLow:
		return true
	}
	return false
}

// TrustTier はログソースの信頼ティアを表す閉じた列挙型。
type TrustTier string

const (
	TrustTierT1 TrustTier = "T1"
	TrustTierT2 TrustTier = "T2"
	TrustTierT3 TrustTier = "T3"
)

// IsValid は信頼ティアが列挙に含まれる値かを検証する。
func (t TrustTier) IsValid() bool {
	switch t {
	case TrustTierT1, TrustTierT2, TrustTierT3:
		return true
	}
	return false
}

// SourceStatus はログソースの稼働状態を表す閉じた列挙型。
type SourceStatus string

const (
	SourceStatusActive  SourceStatus = "active"
	SourceStatusWarning SourceStatus = "warning"
	SourceStatusOffline SourceStatus = "offline"
)

// IsValid は稼働状態が列挙に含まれる値かを検証する。
func (s SourceStatus) IsValid() bool {
	switch s {
	case SourceStatusActive, SourceStatusWarning, SourceStatusOffline:
		return true
	}
	return false
}

// LogSource はログ収集元（サーバー、クラウドIAM、IoTデバイス等）を表す。
type LogSource struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	TrustLevel TrustLevel   `json:"trustLevel"`
	TrustTier  TrustTier    `json:"trustTier"`
	Status     SourceStatus `json:"status"`
	LogsPerMin int          `json:"logsPerMin"`
	LastSeen   string       `json:"lastSeen"`
	IP         string       `json:"ip"`
	OS         string       `json:"os"`
}

// AuditStatus は監査の進行状態を表す閉じた列挙型。
type AuditStatus string

const (
	AuditStatusPending   AuditStatus = "pending"
	AuditStatusRunning   AuditStatus = "running"
	AuditStatusCompleted AuditStatus = "completed"
	AuditStatusFailed    AuditStatus = "failed"
)

// IsValid は監査状態が列挙に含まれる値かを検証する。
func (s AuditStatus) IsValid() bool {
	switch s {
	case AuditStatusPending, AuditStatusRunning,
		AuditStatusCompleted, AuditStatusFailed:
		return true
	}
	return false
}

// Severity は検出結果の深刻度を表す閉じた列挙型。
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// IsValid は深刻度が列挙に含まれる値かを検証する。
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium,
		SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// Audit はフォレンジック監査の実行単位を表す。
type Audit struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Status        AuditStatus `json:"status"`
	Severity      Severity    `json:"severity,omitempty"`
	SourceIDs     []string    `json:"sourceIds"`
	FindingsCount int         `json:"findingsCount"`
	CreatedAt     time.Time   `json:"createdAt"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty"`
}

// LogLine は検出結果に添付されるログスニペットの1行を表す。
type LogLine struct {
	LineNo      int    `json:"lineNo"`
	Timestamp   string `json:"timestamp"`
	Raw         string `json:"raw"`
	Highlighted bool   `json:"highlighted"`
}

// LogSnippet は検出結果の根拠となるログ断片と封印ブロックのハッシュを表す。
type LogSnippet struct {
	Lines     []LogLine `json:"lines"`
	BlockHash string    `json:"blockHash"`
}

// TimelineEvent は検出結果に付随する時系列イベントを表す。
type TimelineEvent struct {
	Time  string `json:"time"`
	Event string `json:"event"`
}

// Finding は監査で検出されたセキュリティ所見を表す。
type Finding struct {
	ID          string          `json:"id"`
	AuditID     string          `json:"auditId"`
	Severity    Severity        `json:"severity"`
	Confidence  float64         `json:"confidence"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	MITRE       string          `json:"mitre"`
	MITREName   string          `json:"mitreName"`
	Phase       string          `json:"phase"`
	SourceID    string          `json:"sourceId"`
	SourceName  string          `json:"sourceName"`
	Timestamp   string          `json:"timestamp"`
	LogSnippet  LogSnippet      `json:"logSnippet"`
	Timeline    []TimelineEvent `json:"timeline"`
}

// OrgStats はダッシュボードに表示する組織全体の統計値を表す。
type OrgStats struct {
	TotalLogs24h         int     `json:"totalLogs24h"`
	ActiveAlerts         int     `json:"activeAlerts"`
	IntegrityScore       float64 `json:"integrityScore"`
	SourcesOnline        int     `json:"sourcesOnline"`
	SourcesTotal         int     `json:"sourcesTotal"`
	BlocksSealed         int     `json:"blocksSealed"`
	LastSealedAt         string  `json:"lastSealedAt"`
	InvestigationsActive int     `json:"investigationsActive"`
	InvestigationsTotal  int     `json:"investigationsTotal"`
}
