package model

import "encoding/json"

// Setting is one row of the key/value settings store. Whole documents are
// saved and loaded verbatim under a logical key ("config" for the platform
// settings blob).
type Setting struct {
	Key   string          `gorm:"primaryKey;size:50" json:"key"`
	Value json.RawMessage `gorm:"type:json" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

// SettingKeyConfig is the key the platform settings document lives under.
const SettingKeyConfig = "config"

// PlatformSettings 平台全局配置：站点信息、联系方式、论坛锁、公告等
// swagger:model PlatformSettings
type PlatformSettings struct {
	TeacherName          string           `json:"teacherName"`
	TeacherBio           string           `json:"teacherBio"`
	Logo                 string           `json:"logo"`
	Whatsapp             string           `json:"whatsapp"`
	TeamWhatsapp         string           `json:"teamWhatsapp"`
	TeamPhone            string           `json:"teamPhone"`
	Facebook             string           `json:"facebook"`
	Youtube              string           `json:"youtube"`
	TelegramGeneral      string           `json:"telegramGeneral"`
	TelegramGrades       map[Grade]string `json:"telegramGrades"`
	ForumLocked          map[Grade]bool   `json:"forumLocked"`
	AnnouncementText     string           `json:"announcementText"`
	AnnouncementTarget   string           `json:"announcementTarget"` // a grade or "all"
	IsAnnouncementActive bool             `json:"isAnnouncementActive"`
	TermPlans            map[Grade]string `json:"termPlans"`
	PaymentNumber        string           `json:"paymentNumber"`
}

// DefaultPlatformSettings returns the settings used until an admin saves
// their own (persistence failures also degrade to these, the platform keeps
// functioning against in-memory state).
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		TeacherName:        "Mr. Egypt",
		TeacherBio:         "English for secondary school students",
		TelegramGrades:     map[Grade]string{},
		ForumLocked:        map[Grade]bool{GradeFirstSec: false, GradeSecondSec: false, GradeThirdSec: false},
		AnnouncementTarget: "all",
		TermPlans:          map[Grade]string{},
	}
}

// ForumLockedFor reports whether the forum is locked for the grade.
func (p *PlatformSettings) ForumLockedFor(grade Grade) bool {
	if p.ForumLocked == nil {
		return false
	}
	return p.ForumLocked[grade]
}
