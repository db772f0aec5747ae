package repository

import (
	"english_edu_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

// SettingRepository is a get/save-by-key document store: whatever was last
// saved under a key is loaded back verbatim.
type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

// Get returns the raw document for the key, or (nil, nil) if absent.
func (r *SettingRepository) Get(key string) ([]byte, error) {
	var setting model.Setting
	err := r.DB.First(&setting, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return setting.Value, nil
}

func (r *SettingRepository) Save(key string, value []byte) error {
	setting := model.Setting{Key: key, Value: value}
	return r.DB.Save(&setting).Error
}
