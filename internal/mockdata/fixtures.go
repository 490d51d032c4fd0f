// Package mockdata はダッシュボード表示用の固定デモデータを提供する。
// 実際のログ取り込みパイプラインが接続されるまでの間、各ビューは
// このパッケージのスナップショットを返す。
package mockdata

import (
	"time"

	"github.com/forensiq/forensiq/internal/model"
)

var logSources = []model.LogSource{
	{
		ID:         "src_001",
		Name:       "prod-web-server-01",
		Type:       "Linux Server",
		TrustLevel: model.TrustLevelHigh,
		TrustTier:  model.TrustTierT1,
		Status:     model.SourceStatusActive,
		LogsPerMin: 342,
		LastSeen:   "2s ago",
		IP:         "10.0.1.10",
		OS:         "Ubuntu 22.04",
	},
	{
		ID:         "src_002",
		Name:       "prod-db-primary",
		Type:       "Database Server",
		TrustLevel: model.TrustLevelHigh,
		TrustTier:  model.TrustTierT1,
		Status:     model.SourceStatusActive,
		LogsPerMin: 187,
		LastSeen:   "5s ago",
		IP:         "10.0.1.20",
		OS:         "RHEL 9.1",
	},
	{
		ID:         "src_003",
		Name:       "aws-iam-cloudtrail",
		Type:       "Cloud IAM",
		TrustLevel: model.TrustLevelHigh,
		TrustTier:  model.TrustTierT1,
		Status:     model.SourceStatusActive,
		LogsPerMin: 56,
		LastSeen:   "12s ago",
		IP:         "AWS us-east-1",
		OS:         "CloudTrail",
	},
	{
		ID:         "src_004",
		Name:       "corp-win-dc-01",
		Type:       "Windows DC",
		TrustLevel: model.TrustLevelHigh,
		TrustTier:  model.TrustTierT1,
		Status:     model.SourceStatusActive,
		LogsPerMin: 423,
		LastSeen:   "3s ago",
		IP:         "10.0.0.5",
		OS:         "Win Server 2022",
	},
	{
		ID:         "src_005",
		Name:       "nginx-load-balancer",
		Type:       "App Server",
		TrustLevel: model.TrustLevelMedium,
		TrustTier:  model.TrustTierT2,
		Status:     model.SourceStatusActive,
		LogsPerMin: 1204,
		LastSeen:   "1s ago",
		IP:         "10.0.1.5",
		OS:         "Ubuntu 20.04",
	},
	{
		ID:         "src_006",
		Name:       "iot-sensor-cluster-a",
		Type:       "IoT Device",
		TrustLevel: model.TrustLevelLow,
		TrustTier:  model.TrustTierT3,
		Status:     model.SourceStatusWarning,
		LogsPerMin: 89,
		LastSeen:   "45s ago",
		IP:         "192.168.10.22",
		OS:         "Embedded Linux",
	},
}

var stats = model.OrgStats{
	TotalLogs24h:         4820441,
	ActiveAlerts:         12,
	IntegrityScore:       99.7,
	SourcesOnline:        5,
	SourcesTotal:         6,
	BlocksSealed:         9648,
	LastSealedAt:         "34s ago",
	InvestigationsActive: 1,
	InvestigationsTotal:  3,
}

var audits = []model.Audit{
	{
		ID:            "aud_001",
		Name:          "Q4 Intrusion Investigation",
		Status:        model.AuditStatusRunning,
		Severity:      model.SeverityCritical,
		SourceIDs:     []string{"src_002", "src_004"},
		FindingsCount: 2,
		CreatedAt:     time.Date(2024, 11, 18, 2, 20, 0, 0, time.UTC),
	},
	{
		ID:            "aud_002",
		Name:          "IAM Policy Drift Review",
		Status:        model.AuditStatusCompleted,
		Severity:      model.SeverityMedium,
		SourceIDs:     []string{"src_003"},
		FindingsCount: 0,
		CreatedAt:     time.Date(2024, 11, 4, 9, 0, 0, 0, time.UTC),
		CompletedAt:   timePtr(time.Date(2024, 11, 4, 9, 42, 17, 0, time.UTC)),
	},
	{
		ID:            "aud_003",
		Name:          "IoT Firmware Integrity Sweep",
		Status:        model.AuditStatusCompleted,
		Severity:      model.SeverityLow,
		SourceIDs:     []string{"src_006"},
		FindingsCount: 0,
		CreatedAt:     time.Date(2024, 10, 21, 14, 30, 0, 0, time.UTC),
		CompletedAt:   timePtr(time.Date(2024, 10, 21, 15, 3, 44, 0, time.UTC)),
	},
}

var findings = []model.Finding{
	{
		ID:         "fnd_001",
		AuditID:    "aud_001",
		Severity:   model.SeverityCritical,
		Confidence: 0.94,
		Title:      "Credential Dumping via LSASS Memory Access",
		Description: "Process mimikatz.exe (PID 4821) attempted to access lsass.exe memory at 02:14:33 UTC. " +
			"This is consistent with MITRE ATT&CK T1003.001 - OS Credential Dumping.",
		MITRE:      "T1003.001",
		MITREName:  "OS Credential Dumping",
		Phase:      "Credential Access",
		SourceID:   "src_004",
		SourceName: "corp-win-dc-01",
		Timestamp:  "2024-11-18T02:14:33Z",
		LogSnippet: model.LogSnippet{
			Lines: []model.LogLine{
				{
					LineNo:    4821,
					Timestamp: "02:14:31.204",
					Raw:       "EventID=4688 SubjectUserName=svc-backup$ ProcessName=cmd.exe NewProcessName=m64.exe",
				},
				{
					LineNo:      4822,
					Timestamp:   "02:14:33.117",
					Raw:         "EventID=10 SourceImage=m64.exe TargetImage=lsass.exe GrantedAccess=0x1fffff",
					Highlighted: true,
				},
				{
					LineNo:      4823,
					Timestamp:   "02:14:33.891",
					Raw:         "EventID=4624 LogonType=9 TargetUserName=Administrator TargetDomainName=CORP",
					Highlighted: true,
				},
			},
			BlockHash: "sha256:a3f8c2d1e9b47f6a5c8d3e2b1a4f7c9e6d8b2a5f3c1e7d4b9a6f2c8e5d1b3a7f",
		},
		Timeline: []model.TimelineEvent{
			{Time: "02:13:55", Event: "Backup service account authenticated via VPN"},
			{Time: "02:14:01", Event: "Unusual process spawn: cmd.exe → m64.exe"},
			{Time: "02:14:33", Event: "LSASS memory access detected (THIS EVENT)"},
			{Time: "02:14:34", Event: "Privilege escalation to Administrator"},
		},
	},
	{
		ID:         "fnd_002",
		AuditID:    "aud_001",
		Severity:   model.SeverityHigh,
		Confidence: 0.88,
		Title:      "Lateral Movement via Pass-the-Hash",
		Description: "Successful NTLM authentication to prod-db-primary using a compromised administrator token " +
			"within 40 seconds of the LSASS dump.",
		MITRE:      "T1550.002",
		MITREName:  "Pass the Hash",
		Phase:      "Lateral Movement",
		SourceID:   "src_002",
		SourceName: "prod-db-primary",
		Timestamp:  "2024-11-18T02:15:12Z",
		LogSnippet: model.LogSnippet{
			Lines: []model.LogLine{
				{
					LineNo:    18820,
					Timestamp: "02:15:09.441",
					Raw:       "sshd[18820]: Connection from 10.0.1.44 port 51204",
				},
				{
					LineNo:      18821,
					Timestamp:   "02:15:12.003",
					Raw:         "sshd[18820]: Accepted publickey for root from 10.0.1.44 ssh2: RSA SHA256:***",
					Highlighted: true,
				},
			},
			BlockHash: "sha256:b7e3d9c4f1a8e5b2c6d4f9a1e3b7c5d2f8a4e6c9b3f1d7a5e2c8f4b1d9a6e3c7",
		},
		Timeline: []model.TimelineEvent{
			{Time: "02:14:33", Event: "Credentials stolen from DC (fnd_001)"},
			{Time: "02:15:09", Event: "SSH connection attempt from 10.0.1.44"},
			{Time: "02:15:12", Event: "Root login accepted (THIS EVENT)"},
		},
	},
}

// LogSources は登録済みログソース一覧のコピーを返す。
func LogSources() []model.LogSource {
	out := make([]model.LogSource, len(logSources))
	copy(out, logSources)
	return out
}

// Stats は組織全体の統計スナップショットを返す。
func Stats() model.OrgStats {
	return stats
}

// Audits は監査一覧のコピーを返す。
func Audits() []model.Audit {
	out := make([]model.Audit, len(audits))
	copy(out, audits)
	return out
}

// AuditByID は指定IDの監査を返す。存在しない場合は false を返す。
func AuditByID(id string) (model.Audit, bool) {
	for _, a := range audits {
		if a.ID == id {
			return a, true
		}
	}
	return model.Audit{}, false
}

// FindingsByAudit は指定監査に属する検出結果のコピーを返す。
func FindingsByAudit(auditID string) []model.Finding {
	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if f.AuditID == auditID {
			out = append(out, f)
		}
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}
