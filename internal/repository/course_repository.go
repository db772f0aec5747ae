package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) preloadAll(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Lectures", func(db *gorm.DB) *gorm.DB { return db.Order("lectures.position") }).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB { return db.Order("assignments.position") }).
		Preload("Exams.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("exam_questions.position") }).
		Preload("Exams")
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.preloadAll(r.DB).First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) ListAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.preloadAll(r.DB).Order("created_at").Find(&courses).Error
	return courses, err
}

// ListByGrade 学生端按年级过滤课程
func (r *CourseRepository) ListByGrade(grade model.Grade) ([]model.Course, error) {
	var courses []model.Course
	err := r.preloadAll(r.DB).Where("grade = ?", grade).Order("created_at").Find(&courses).Error
	return courses, err
}

// Save replaces the course and its nested lectures/assignments/exams.
func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(course).Error
}

// Delete removes the course; lectures, assignments and exams go with it.
func (r *CourseRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.Lecture{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		var exams []model.Exam
		if err := tx.Where("course_id = ?", id).Find(&exams).Error; err != nil {
			return err
		}
		for _, exam := range exams {
			if err := tx.Where("exam_id = ?", exam.ID).Delete(&model.ExamQuestion{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Exam{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
}

func (r *CourseRepository) FindExam(examID string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("exam_questions.position") }).
		First(&exam, "id = ?", examID).Error
	return &exam, err
}
