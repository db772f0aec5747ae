package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// ListStudents 按年级筛选学生，grade为空返回全部
func (r *UserRepository) ListStudents(grade model.Grade) ([]model.User, error) {
	var users []model.User
	q := r.DB.Where("role = ?", model.Student)
	if grade != "" {
		q = q.Where("grade = ?", grade)
	}
	err := q.Order("full_name").Find(&users).Error
	return users, err
}

func (r *UserRepository) SetBlocked(userID uint, blocked bool) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("is_blocked", blocked).
		Error
}

func (r *UserRepository) SetLevel(userID uint, level model.StudentLevel) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("level", level).
		Error
}
