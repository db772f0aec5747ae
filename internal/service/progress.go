package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"math"
)

// LectureProgress returns the user's completion percentage for one course:
// round(100 * completed lectures of this course / total lectures). A course
// with no lectures is 0, never an error.
func LectureProgress(user *model.User, course *model.Course) int {
	if len(course.Lectures) == 0 {
		return 0
	}
	completed := 0
	for _, lecture := range course.Lectures {
		if user.HasCompleted(lecture.ID) {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(course.Lectures)) * 100))
}

// OverallProgress averages LectureProgress over the courses the user has
// unlocked. No unlocked courses means 0.
func OverallProgress(user *model.User, courses []model.Course) int {
	sum, count := 0, 0
	for i := range courses {
		if !user.HasUnlocked(courses[i].ID) {
			continue
		}
		sum += LectureProgress(user, &courses[i])
		count++
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

type ProgressService struct {
	UserRepo   *repository.UserRepository
	CourseRepo *repository.CourseRepository
}

func NewProgressService(userRepo *repository.UserRepository, courseRepo *repository.CourseRepository) *ProgressService {
	return &ProgressService{UserRepo: userRepo, CourseRepo: courseRepo}
}

// CourseProgress 单个课程的进度明细
type CourseProgress struct {
	CourseID      string `json:"courseId"`
	CourseTitle   string `json:"courseTitle"`
	Completed     int    `json:"completed"`
	TotalLectures int    `json:"totalLectures"`
	Percent       int    `json:"percent"`
}

// StudentProgress 学生总体进度与按课程拆分
type StudentProgress struct {
	Overall int              `json:"overall"`
	Courses []CourseProgress `json:"courses"`
}

// ForStudent builds the progress breakdown over the student's unlocked courses.
func (s *ProgressService) ForStudent(userID uint) (*StudentProgress, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.CourseRepo.ListAll()
	if err != nil {
		return nil, err
	}

	out := &StudentProgress{Overall: OverallProgress(user, courses)}
	for i := range courses {
		course := &courses[i]
		if !user.HasUnlocked(course.ID) {
			continue
		}
		completed := 0
		for _, lecture := range course.Lectures {
			if user.HasCompleted(lecture.ID) {
				completed++
			}
		}
		out.Courses = append(out.Courses, CourseProgress{
			CourseID:      course.ID,
			CourseTitle:   course.Title,
			Completed:     completed,
			TotalLectures: len(course.Lectures),
			Percent:       LectureProgress(user, course),
		})
	}
	return out, nil
}
