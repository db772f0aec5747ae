package model

type CertificateType string

const (
	CertExcellence CertificateType = "excellence"
	CertProgress   CertificateType = "progress"
	CertCompletion CertificateType = "completion"
)

// swagger:model Certificate
type Certificate struct {
	UUIDBase
	UserID  uint            `gorm:"index" json:"userId"`
	Title   string          `gorm:"size:255;not null" json:"title"`
	Content string          `gorm:"type:text" json:"content"`
	Type    CertificateType `gorm:"type:enum('excellence','progress','completion');default:'excellence'" json:"type"`
}

func (Certificate) TableName() string {
	return "certificates"
}
