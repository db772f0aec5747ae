package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	activationCodeLength   = 8
	codeGenerationAttempts = 5
)

// EntitlementService owns activation codes and course unlocks.
type EntitlementService struct {
	CodeRepo   *repository.ActivationCodeRepository
	UserRepo   *repository.UserRepository
	CourseRepo *repository.CourseRepository
	DB         *gorm.DB
}

func NewEntitlementService(codeRepo *repository.ActivationCodeRepository, userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, db *gorm.DB) *EntitlementService {
	return &EntitlementService{CodeRepo: codeRepo, UserRepo: userRepo, CourseRepo: courseRepo, DB: db}
}

// Activate consumes an unused code matching both the code string and the
// course, marks it used, binds it to the user, and adds the course to the
// user's unlocked set. Returns false with no state change when the code is
// missing, already used, or issued for another course.
func (s *EntitlementService) Activate(userID uint, courseID, code string) (bool, error) {
	activated := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var entry model.ActivationCode
		err := tx.Where("code = ?", code).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // invalid activation is an outcome, not an error
		}
		if err != nil {
			return err
		}
		if !entry.Consume(courseID, code, userID) {
			return nil
		}

		// Conditional update so that only the first committer consumes the
		// code. A plain read-then-save lets two transactions both see
		// is_used = 0 and both win.
		res := tx.Model(&model.ActivationCode{}).
			Where("id = ? AND is_used = ?", entry.ID, false).
			Updates(map[string]interface{}{"is_used": true, "used_by": userID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil // a concurrent activation consumed the code first
		}

		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.UnlockedCourses = user.UnlockedCourses.Add(courseID)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		activated = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if activated {
		logger.Log.Info("course activated",
			zap.Uint("userID", userID),
			zap.String("courseID", courseID))
	}
	return activated, nil
}

// generateUniqueCode draws candidates until one is free of collisions.
// The original platform skipped this check, which could silently hand two
// courses the same code.
func generateUniqueCode(exists func(string) (bool, error)) (string, error) {
	for i := 0; i < codeGenerationAttempts; i++ {
		code := util.RandomCode(activationCodeLength)
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", util.ErrCodeExhausted
}

// IssueCode creates a fresh unused activation code bound to the course.
func (s *EntitlementService) IssueCode(courseID string) (*model.ActivationCode, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	code, err := generateUniqueCode(s.CodeRepo.CodeExists)
	if err != nil {
		return nil, err
	}

	entry := &model.ActivationCode{
		Code:        code,
		CourseID:    course.ID,
		CourseTitle: course.Title,
		IsUsed:      false,
	}
	if err := s.CodeRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Revoke removes a code permanently. Users who already consumed it keep
// their unlock.
func (s *EntitlementService) Revoke(code string) error {
	return s.CodeRepo.DeleteByCode(code)
}

func (s *EntitlementService) ListCodes() ([]model.ActivationCode, error) {
	return s.CodeRepo.ListAll()
}
