package model

type ForumMediaType string

const (
	MediaImage ForumMediaType = "image"
	MediaVideo ForumMediaType = "video"
	MediaAudio ForumMediaType = "audio"
	MediaFile  ForumMediaType = "file"
)

// ForumMessage 按年级分版块的论坛消息，用户名和角色冗余存储以便展示
// swagger:model ForumMessage
type ForumMessage struct {
	BaseModel
	UserID    uint           `gorm:"index" json:"userId"`
	UserName  string         `gorm:"size:100" json:"userName"`
	UserRole  UserRole       `gorm:"type:enum('student','admin','team')" json:"userRole"`
	Grade     Grade          `gorm:"type:enum('1sec','2sec','3sec');index" json:"grade"`
	Content   string         `gorm:"type:text" json:"content"`
	MediaURL  string         `gorm:"size:1024" json:"mediaUrl,omitempty"`
	MediaType ForumMediaType `gorm:"size:10" json:"mediaType,omitempty"`
	FileName  string         `gorm:"size:255" json:"fileName,omitempty"`
}

func (ForumMessage) TableName() string {
	return "forum_messages"
}
