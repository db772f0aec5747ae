package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ActivationCodeRepository struct {
	DB *gorm.DB
}

func NewActivationCodeRepository(db *gorm.DB) *ActivationCodeRepository {
	return &ActivationCodeRepository{DB: db}
}

func (r *ActivationCodeRepository) Create(code *model.ActivationCode) error {
	return r.DB.Create(code).Error
}

func (r *ActivationCodeRepository) ListAll() ([]model.ActivationCode, error) {
	var codes []model.ActivationCode
	err := r.DB.Order("created_at DESC").Find(&codes).Error
	return codes, err
}

func (r *ActivationCodeRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ActivationCode{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// DeleteByCode 永久删除激活码；已消费该码的用户解锁不受影响
func (r *ActivationCodeRepository) DeleteByCode(code string) error {
	return r.DB.Where("code = ?", code).Delete(&model.ActivationCode{}).Error
}
