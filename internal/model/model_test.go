package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSet(t *testing.T) {
	s := StringSet{}
	s = s.Add("a")
	s = s.Add("b")
	s = s.Add("a") // idempotent
	assert.Len(t, s, 2)
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))

	s = s.Remove("a")
	assert.False(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))

	s = s.Remove("missing")
	assert.Len(t, s, 1)
}

func TestStringSetScanRoundTrip(t *testing.T) {
	orig := StringSet{"x", "y"}
	val, err := orig.Value()
	require.NoError(t, err)

	var got StringSet
	require.NoError(t, got.Scan(val))
	assert.Equal(t, orig, got)

	var empty StringSet
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}

func TestAnswerSheetGrade(t *testing.T) {
	q := func(id string, correct AnswerOption) ExamQuestion {
		question := ExamQuestion{CorrectAnswer: correct}
		question.ID = id
		return question
	}
	questions := []ExamQuestion{
		q("q1", AnswerA),
		q("q2", AnswerB),
		q("q3", AnswerC),
	}

	tests := []struct {
		name      string
		sheet     AnswerSheet
		wantScore int
	}{
		{"empty sheet scores zero", AnswerSheet{}, 0},
		{"nil sheet scores zero", nil, 0},
		{"unanswered counts wrong", AnswerSheet{"q1": AnswerA}, 1},
		{"wrong answer counts wrong", AnswerSheet{"q1": AnswerA, "q2": AnswerC}, 1},
		{"perfect sheet", AnswerSheet{"q1": AnswerA, "q2": AnswerB, "q3": AnswerC}, 3},
		{"unknown question ignored", AnswerSheet{"zz": AnswerA}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, total := tt.sheet.Grade(questions)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, 3, total)
		})
	}
}

func TestUserCanAccess(t *testing.T) {
	paid := Course{IsPaid: true}
	paid.ID = "paid-course"
	free := Course{IsPaid: false}
	free.ID = "free-course"

	student := &User{Role: Student}
	assert.True(t, student.CanAccess(&free))
	assert.False(t, student.CanAccess(&paid))

	student.UnlockedCourses = student.UnlockedCourses.Add("paid-course")
	assert.True(t, student.CanAccess(&paid))

	admin := &User{Role: Admin}
	assert.True(t, admin.CanAccess(&paid))
}

func TestActivationCodeUsable(t *testing.T) {
	code := ActivationCode{Code: "ABCD2345", CourseID: "c1"}

	assert.True(t, code.Usable("c1", "ABCD2345"))
	assert.False(t, code.Usable("c2", "ABCD2345"), "code bound to another course")
	assert.False(t, code.Usable("c1", "WRONG999"))

	code.IsUsed = true
	assert.False(t, code.Usable("c1", "ABCD2345"), "used codes never match")
}

func TestActivationCodeConsume(t *testing.T) {
	t.Run("first use binds the code", func(t *testing.T) {
		code := ActivationCode{Code: "ABCD2345", CourseID: "c1"}

		assert.True(t, code.Consume("c1", "ABCD2345", 7))
		assert.True(t, code.IsUsed)
		require.NotNil(t, code.UsedBy)
		assert.Equal(t, uint(7), *code.UsedBy)
	})

	t.Run("second use fails and keeps the first binding", func(t *testing.T) {
		code := ActivationCode{Code: "ABCD2345", CourseID: "c1"}
		require.True(t, code.Consume("c1", "ABCD2345", 7))

		assert.False(t, code.Consume("c1", "ABCD2345", 8))
		require.NotNil(t, code.UsedBy)
		assert.Equal(t, uint(7), *code.UsedBy)
	})

	t.Run("wrong course leaves the code untouched", func(t *testing.T) {
		code := ActivationCode{Code: "ABCD2345", CourseID: "c1"}

		assert.False(t, code.Consume("c2", "ABCD2345", 7))
		assert.False(t, code.IsUsed)
		assert.Nil(t, code.UsedBy)
	})
}

func TestCourseExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, (&Course{}).Expired(now), "no expiry means never expires")
	assert.True(t, (&Course{ExpiryDate: &past}).Expired(now))
	assert.True(t, (&Course{ExpiryDate: &now}).Expired(now))
	assert.False(t, (&Course{ExpiryDate: &future}).Expired(now))
}

func TestAssignmentDueWithin(t *testing.T) {
	now := time.Now()
	window := 24 * time.Hour

	soon := Assignment{Deadline: now.Add(time.Hour)}
	assert.True(t, soon.DueWithin(now, window))

	far := Assignment{Deadline: now.Add(48 * time.Hour)}
	assert.False(t, far.DueWithin(now, window))

	overdue := Assignment{Deadline: now.Add(-time.Hour)}
	assert.False(t, overdue.DueWithin(now, window))
}

func TestPlatformSettingsForumLock(t *testing.T) {
	var empty PlatformSettings
	assert.False(t, empty.ForumLockedFor(GradeFirstSec), "nil lock map means unlocked")

	settings := DefaultPlatformSettings()
	assert.False(t, settings.ForumLockedFor(GradeThirdSec))

	settings.ForumLocked[GradeThirdSec] = true
	assert.True(t, settings.ForumLockedFor(GradeThirdSec))
	assert.False(t, settings.ForumLockedFor(GradeFirstSec))
}

func TestGradeValid(t *testing.T) {
	for _, g := range AllGrades() {
		assert.True(t, g.Valid())
	}
	assert.False(t, Grade("4sec").Valid())
	assert.False(t, Grade("").Valid())
}
