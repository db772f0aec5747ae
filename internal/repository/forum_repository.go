package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ForumRepository struct {
	DB *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{DB: db}
}

func (r *ForumRepository) Create(msg *model.ForumMessage) error {
	return r.DB.Create(msg).Error
}

func (r *ForumRepository) ListByGrade(grade model.Grade, limit int) ([]model.ForumMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var msgs []model.ForumMessage
	err := r.DB.Where("grade = ?", grade).Order("created_at DESC").Limit(limit).Find(&msgs).Error
	return msgs, err
}

func (r *ForumRepository) FindByID(id uint) (*model.ForumMessage, error) {
	var msg model.ForumMessage
	err := r.DB.First(&msg, id).Error
	return &msg, err
}

func (r *ForumRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ForumMessage{}, id).Error
}
