package model

import "time"

// OrgType は組織の業種セクターを表す閉じた列挙型。
type OrgType string

const (
	OrgTypeBFSI       OrgType = "bfsi"
	OrgTypeDefense    OrgType = "defense"
	OrgTypeHealthcare OrgType = "healthcare"
	OrgTypeTelecom    OrgType = "telecom"
	OrgTypeEnterprise OrgType = "enterprise"
	OrgTypeOther      OrgType = "other"
)

// OrgTypes は許可される業種セクターの一覧。フォームメタデータの応答に使用する。
var OrgTypes = []OrgType{
	OrgTypeBFSI, OrgTypeDefense, OrgTypeHealthcare,
	OrgTypeTelecom, OrgTypeEnterprise, OrgTypeOther,
}

// IsValid は業種セクターが列挙に含まれる値かを検証する。
func (t OrgType) IsValid() bool {
	switch t {
	case OrgTypeBFSI, OrgTypeDefense, OrgTypeHealthcare,
		OrgTypeTelecom, OrgTypeEnterprise, OrgTypeOther:
		return true
	}
	return false
}

// OrgSize は組織の規模を表す閉じた列挙型。
type OrgSize string

const (
	OrgSizeSmall      OrgSize = "small"
	OrgSizeMedium     OrgSize = "medium"
	OrgSizeLarge      OrgSize = "large"
	OrgSizeEnterprise OrgSize = "enterprise"
)

// OrgSizes は許可される組織規模の一覧。フォームメタデータの応答に使用する。
var OrgSizes = []OrgSize{
	OrgSizeSmall, OrgSizeMedium, OrgSizeLarge, OrgSizeEnterprise,
}

// IsValid は組織規模が列挙に含まれる値かを検証する。
func (s OrgSize) IsValid() bool {
	switch s {
	case OrgSizeSmall, OrgSizeMedium, OrgSizeLarge, OrgSizeEnterprise:
		return true
	}
	return false
}

// オンボーディング時に固定で設定されるプロビジョニング既定値。
// 監査整合性サブシステム（署名・タイムスタンプ局）の初期設定として使用される。
const (
	DefaultRegion             = "India - Central"
	DefaultRetentionDays      = 365
	DefaultSigningMode        = "rsa4096"
	DefaultTimestampAuthority = "rfc3161"
)

// Organization はテナント（データ分離の単位）を表す。
// オンボーディングトランザクションで1回だけ作成され、IDは以後不変。
type Organization struct {
	ID                 string
	Name               string
	Type               OrgType
	Size               OrgSize
	Region             string
	RetentionDays      int
	SigningMode        string
	TimestampAuthority string
	CreatedAt          time.Time
}
