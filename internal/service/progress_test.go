package service

import (
	"testing"

	"english_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func makeCourse(id string, lectureIDs ...string) model.Course {
	course := model.Course{Title: "Course " + id}
	course.ID = id
	for _, lid := range lectureIDs {
		lec := model.Lecture{CourseID: id}
		lec.ID = lid
		course.Lectures = append(course.Lectures, lec)
	}
	return course
}

func TestLectureProgress(t *testing.T) {
	tests := []struct {
		name      string
		lectures  []string
		completed []string
		want      int
	}{
		{"no lectures", nil, nil, 0},
		{"none completed", []string{"l1", "l2"}, nil, 0},
		{"half completed", []string{"l1", "l2"}, []string{"l1"}, 50},
		{"all completed", []string{"l1", "l2"}, []string{"l1", "l2"}, 100},
		{"one third rounds down", []string{"l1", "l2", "l3"}, []string{"l1"}, 33},
		{"two thirds rounds up", []string{"l1", "l2", "l3"}, []string{"l1", "l2"}, 67},
		{"other course lectures ignored", []string{"l1", "l2"}, []string{"x1", "l1"}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := makeCourse("c1", tt.lectures...)
			user := &model.User{CompletedLectures: model.StringSet(tt.completed)}
			assert.Equal(t, tt.want, LectureProgress(user, &course))
		})
	}
}

func TestOverallProgress(t *testing.T) {
	courses := []model.Course{
		makeCourse("c1", "a1", "a2"),       // 50% completed below
		makeCourse("c2", "b1", "b2", "b3"), // 33%
		makeCourse("c3", "d1"),             // locked, must not count
	}
	user := &model.User{
		UnlockedCourses:   model.StringSet{"c1", "c2"},
		CompletedLectures: model.StringSet{"a1", "b1", "d1"},
	}

	// mean of 50 and 33 is 41.5, rounds to 42
	assert.Equal(t, 42, OverallProgress(user, courses))
}

func TestOverallProgressNoUnlockedCourses(t *testing.T) {
	courses := []model.Course{makeCourse("c1", "a1")}
	user := &model.User{CompletedLectures: model.StringSet{"a1"}}
	assert.Equal(t, 0, OverallProgress(user, courses))
}
