package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AnswerOption 选择题的四个选项
type AnswerOption string

const (
	AnswerA AnswerOption = "A"
	AnswerB AnswerOption = "B"
	AnswerC AnswerOption = "C"
	AnswerD AnswerOption = "D"
)

func (a AnswerOption) Valid() bool {
	switch a {
	case AnswerA, AnswerB, AnswerC, AnswerD:
		return true
	}
	return false
}

// swagger:model Exam
type Exam struct {
	UUIDBase
	CourseID        string         `gorm:"index;type:varchar(36)" json:"courseId"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	DurationMinutes int            `gorm:"default:0" json:"durationMinutes"`
	Questions       []ExamQuestion `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (Exam) TableName() string {
	return "exams"
}

// swagger:model ExamQuestion
type ExamQuestion struct {
	UUIDBase
	ExamID        string       `gorm:"index;type:varchar(36)" json:"examId"`
	ImageURL      string       `gorm:"size:1024" json:"imageUrl"`
	CorrectAnswer AnswerOption `gorm:"type:enum('A','B','C','D');not null" json:"-"`
	Position      int          `gorm:"default:0" json:"position"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}

// AnswerSheet maps question IDs to the selected option. Unanswered questions
// are simply absent.
type AnswerSheet map[string]AnswerOption

func (s AnswerSheet) Value() (driver.Value, error) {
	if s == nil {
		s = AnswerSheet{}
	}
	return json.Marshal(s)
}

func (s *AnswerSheet) Scan(value interface{}) error {
	if value == nil {
		*s = AnswerSheet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AnswerSheet", value)
	}
	if len(data) == 0 {
		*s = AnswerSheet{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Grade scores the sheet against the exam's questions: one point per question
// whose recorded answer matches the correct one, unanswered counts as wrong.
func (s AnswerSheet) Grade(questions []ExamQuestion) (score, total int) {
	total = len(questions)
	for _, q := range questions {
		if s[q.ID] == q.CorrectAnswer {
			score++
		}
	}
	return score, total
}

// ExamResult 持久化的考试成绩（会话本身是临时的，只有结果落库）
type ExamResult struct {
	BaseModel
	UserID        uint        `gorm:"index" json:"userId"`
	ExamID        string      `gorm:"index;type:varchar(36)" json:"examId"`
	CourseID      string      `gorm:"index;type:varchar(36)" json:"courseId"`
	Score         int         `gorm:"not null" json:"score"`
	Total         int         `gorm:"not null" json:"total"`
	Answers       AnswerSheet `gorm:"type:json" json:"answers"`
	AutoSubmitted bool        `gorm:"default:false" json:"autoSubmitted"`
	CompletedAt   time.Time   `json:"completedAt"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}
