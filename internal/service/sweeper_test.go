package service

import (
	"testing"
	"time"

	"english_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func courseExpiring(id string, expiry *time.Time) model.Course {
	course := model.Course{Title: id, ExpiryDate: expiry}
	course.ID = id
	return course
}

func TestSweepExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	exact := now

	courses := []model.Course{
		courseExpiring("never", nil),
		courseExpiring("past", &past),
		courseExpiring("future", &future),
		courseExpiring("exact", &exact),
	}

	surviving, expired := SweepExpired(courses, now)

	survivors := make([]string, 0, len(surviving))
	for _, c := range surviving {
		survivors = append(survivors, c.ID)
	}
	removed := make([]string, 0, len(expired))
	for _, c := range expired {
		removed = append(removed, c.ID)
	}

	assert.ElementsMatch(t, []string{"never", "future"}, survivors)
	// an expiry equal to now is already over
	assert.ElementsMatch(t, []string{"past", "exact"}, removed)
}

func TestSweepExpiredEmpty(t *testing.T) {
	surviving, expired := SweepExpired(nil, time.Now())
	assert.Empty(t, surviving)
	assert.Empty(t, expired)
}

func TestSweepExpiredAllSurvive(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	courses := []model.Course{
		courseExpiring("a", nil),
		courseExpiring("b", &future),
	}
	surviving, expired := SweepExpired(courses, time.Now())
	assert.Len(t, surviving, 2)
	assert.Empty(t, expired)
}
