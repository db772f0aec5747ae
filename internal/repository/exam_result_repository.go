package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ExamResultRepository struct {
	DB *gorm.DB
}

func NewExamResultRepository(db *gorm.DB) *ExamResultRepository {
	return &ExamResultRepository{DB: db}
}

func (r *ExamResultRepository) Create(result *model.ExamResult) error {
	return r.DB.Create(result).Error
}

func (r *ExamResultRepository) ListByUser(userID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Where("user_id = ?", userID).Order("completed_at DESC").Find(&results).Error
	return results, err
}

func (r *ExamResultRepository) ListByExam(examID string) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Where("exam_id = ?", examID).Order("score DESC").Find(&results).Error
	return results, err
}
