package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
	Team    UserRole = "team"
)

// Grade 年级分组，决定学生能看到哪些课程与论坛版块
type Grade string

const (
	GradeFirstSec  Grade = "1sec"
	GradeSecondSec Grade = "2sec"
	GradeThirdSec  Grade = "3sec"
)

func (g Grade) Valid() bool {
	switch g {
	case GradeFirstSec, GradeSecondSec, GradeThirdSec:
		return true
	}
	return false
}

// AllGrades lists every cohort, in curriculum order.
func AllGrades() []Grade {
	return []Grade{GradeFirstSec, GradeSecondSec, GradeThirdSec}
}

type StudentLevel string

const (
	LevelExcellent StudentLevel = "excellent"
	LevelAverage   StudentLevel = "average"
	LevelWeak      StudentLevel = "weak"
)

// swagger:model User
type User struct {
	BaseModel
	FullName          string       `gorm:"size:100;not null" json:"fullName"`
	Email             string       `gorm:"size:100;unique;not null" json:"email"`
	Password          string       `gorm:"size:100;not null" json:"-"`
	Phone             string       `gorm:"size:20" json:"phone"`
	ParentPhone       string       `gorm:"size:20" json:"parentPhone"`
	StudentCode       string       `gorm:"size:20;index" json:"studentCode"`
	Governorate       string       `gorm:"size:50" json:"governorate"`
	Address           string       `gorm:"size:255" json:"address"`
	Age               string       `gorm:"size:10" json:"age"`
	Grade             Grade        `gorm:"type:enum('1sec','2sec','3sec');default:'1sec';index" json:"grade"`
	Role              UserRole     `gorm:"type:enum('student','admin','team');default:'student'" json:"role"`
	Level             StudentLevel `gorm:"type:enum('excellent','average','weak');default:'average'" json:"level"`
	IsBlocked         bool         `gorm:"default:false" json:"isBlocked"`
	LoginCount        int          `gorm:"default:0" json:"loginCount"`
	CompletedLectures StringSet    `gorm:"type:json" json:"completedLectures"`
	UnlockedCourses   StringSet    `gorm:"type:json" json:"unlockedCourses"`
	Avatar            string       `gorm:"size:255" json:"avatar"`
	LastLogin         time.Time    `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// HasUnlocked reports whether the user holds an entitlement for the course.
func (u *User) HasUnlocked(courseID string) bool {
	return u.UnlockedCourses.Contains(courseID)
}

// CanAccess is the entitlement predicate: free courses are open to everyone,
// admins see everything, paid courses require an unlock.
func (u *User) CanAccess(course *Course) bool {
	if !course.IsPaid {
		return true
	}
	if u.Role == Admin {
		return true
	}
	return u.HasUnlocked(course.ID)
}

// HasCompleted reports whether the lecture is in the user's completion set.
func (u *User) HasCompleted(lectureID string) bool {
	return u.CompletedLectures.Contains(lectureID)
}
