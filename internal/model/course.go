package model

import (
	"time"
)

type LectureType string

const (
	LectureVideo LectureType = "video"
	LectureFile  LectureType = "file"
	LectureImage LectureType = "image"
	LectureAudio LectureType = "audio"
)

// LectureSource 课时内容引用的两种形态：外部URL或平台存储中的对象
type LectureSource string

const (
	SourceRemoteURL LectureSource = "remote_url"
	SourceUpload    LectureSource = "upload"
)

// swagger:model Course
type Course struct {
	UUIDBase
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Thumbnail   string       `gorm:"size:255" json:"thumbnail"`
	Grade       Grade        `gorm:"type:enum('1sec','2sec','3sec');index" json:"grade"`
	IsPaid      bool         `gorm:"default:false" json:"isPaid"`
	Price       *float64     `json:"price,omitempty"`
	ExpiryDate  *time.Time   `json:"expiryDate,omitempty"`
	Lectures    []Lecture    `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"lectures"`
	Assignments []Assignment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"assignments"`
	Exams       []Exam       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"exams"`
}

func (Course) TableName() string {
	return "courses"
}

// Expired reports whether the course has passed its expiry timestamp.
// Courses without an expiry never expire.
func (c *Course) Expired(now time.Time) bool {
	if c.ExpiryDate == nil {
		return false
	}
	return !c.ExpiryDate.After(now)
}

// FindExam returns the exam with the given id, or nil.
func (c *Course) FindExam(examID string) *Exam {
	for i := range c.Exams {
		if c.Exams[i].ID == examID {
			return &c.Exams[i]
		}
	}
	return nil
}

// swagger:model Lecture
type Lecture struct {
	UUIDBase
	CourseID string        `gorm:"index;type:varchar(36)" json:"courseId"`
	Title    string        `gorm:"size:255;not null" json:"title"`
	Type     LectureType   `gorm:"type:enum('video','file','image','audio');not null" json:"type"`
	Source   LectureSource `gorm:"type:enum('remote_url','upload');default:'remote_url'" json:"source"`
	// URL holds the external address when Source is remote_url, ObjectKey the
	// storage key when Source is upload. The core only compares identifiers;
	// resolving the content is the delivery layer's job.
	URL       string  `gorm:"size:1024" json:"url"`
	ObjectKey string  `gorm:"size:512" json:"objectKey,omitempty"`
	FileName  string  `gorm:"size:255" json:"fileName,omitempty"`
	Duration  float64 `gorm:"default:0" json:"duration,omitempty"` // seconds, probed for videos
	Position  int     `gorm:"default:0" json:"position"`
}

func (Lecture) TableName() string {
	return "lectures"
}

// swagger:model Assignment
type Assignment struct {
	UUIDBase
	CourseID        string    `gorm:"index;type:varchar(36)" json:"courseId"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	FileURL         string    `gorm:"size:1024" json:"fileUrl,omitempty"`
	Deadline        time.Time `json:"deadline"`
	DurationMinutes int       `gorm:"default:0" json:"durationMinutes"`
	Position        int       `gorm:"default:0" json:"position"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// DueWithin reports whether the deadline is still ahead of now but closer
// than the given window.
func (a *Assignment) DueWithin(now time.Time, window time.Duration) bool {
	diff := a.Deadline.Sub(now)
	return diff > 0 && diff < window
}
