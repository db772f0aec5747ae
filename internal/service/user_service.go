package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
	CertRepo *repository.CertificateRepository
	AI       *AIService
}

func NewUserService(userRepo *repository.UserRepository, certRepo *repository.CertificateRepository, ai *AIService) *UserService {
	return &UserService{UserRepo: userRepo, CertRepo: certRepo, AI: ai}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

// ToggleLectureCompletion flips the user's completion mark for a lecture and
// returns the new state. Toggling is symmetric: students can un-mark a
// lecture they marked by mistake. Admin accounts have no progress to track.
func (s *UserService) ToggleLectureCompletion(userID uint, lectureID string) (completed bool, err error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return false, err
	}
	if user.Role == model.Admin {
		return false, util.ErrPermissionDenied
	}

	if user.HasCompleted(lectureID) {
		user.CompletedLectures = user.CompletedLectures.Remove(lectureID)
		completed = false
	} else {
		user.CompletedLectures = user.CompletedLectures.Add(lectureID)
		completed = true
	}

	if err := s.UserRepo.Update(user); err != nil {
		return false, err
	}
	return completed, nil
}

func (s *UserService) ListStudents(grade model.Grade) ([]model.User, error) {
	return s.UserRepo.ListStudents(grade)
}

func (s *UserService) SetBlocked(userID uint, blocked bool) error {
	return s.UserRepo.SetBlocked(userID, blocked)
}

func (s *UserService) SetLevel(userID uint, level model.StudentLevel) error {
	return s.UserRepo.SetLevel(userID, level)
}

// IssueCertificate attaches an AI-worded certificate to the student. The AI
// collaborator already degrades to a fixed text, so this cannot fail on the
// generation side.
func (s *UserService) IssueCertificate(studentID uint, certType model.CertificateType) (*model.Certificate, error) {
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	content := s.AI.GenerateCertificateContent(student.FullName, util.GradeLabels[student.Grade], certType)

	title := "Certificate of Appreciation 🏆"
	switch certType {
	case model.CertProgress:
		title = "Certificate of Progress 📈"
	case model.CertCompletion:
		title = "Certificate of Completion 🎓"
	}

	cert := &model.Certificate{
		UserID:  student.ID,
		Title:   title,
		Content: content,
		Type:    certType,
	}
	if err := s.CertRepo.Create(cert); err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *UserService) Certificates(userID uint) ([]model.Certificate, error) {
	return s.CertRepo.ListByUser(userID)
}
