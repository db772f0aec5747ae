package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"
	"english_edu_backend/pkg/monitoring"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExamService struct {
	Sessions   *ExamSessionManager
	ResultRepo *repository.ExamResultRepository
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
}

func NewExamService(sessions *ExamSessionManager, resultRepo *repository.ExamResultRepository, courseRepo *repository.CourseRepository, userRepo *repository.UserRepository) *ExamService {
	return &ExamService{
		Sessions:   sessions,
		ResultRepo: resultRepo,
		CourseRepo: courseRepo,
		UserRepo:   userRepo,
	}
}

// Start opens an exam session after checking that the user may access the
// course. An empty exam comes back as a terminal not_ready view rather than
// an error.
func (s *ExamService) Start(userID uint, courseID, examID string) (ExamSessionView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return ExamSessionView{}, err
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExamSessionView{}, util.ErrCourseNotFound
		}
		return ExamSessionView{}, err
	}

	if !user.CanAccess(course) {
		return ExamSessionView{}, util.ErrCourseLocked
	}

	exam := course.FindExam(examID)
	if exam == nil {
		return ExamSessionView{}, util.ErrExamNotFound
	}

	session := s.Sessions.Start(userID, exam, s.persistResult(course.ID))
	monitoring.ExamSessionsStarted.Inc()
	return session.View(), nil
}

// persistResult is the finish callback: it writes the graded result and
// must never fail the session, persistence errors are logged and swallowed.
func (s *ExamService) persistResult(courseID string) ExamFinishFunc {
	return func(userID uint, exam *model.Exam, answers model.AnswerSheet, score, total int, autoSubmitted bool) {
		trigger := "manual"
		if autoSubmitted {
			trigger = "timer"
		}
		monitoring.ExamSessionsFinished.WithLabelValues(trigger).Inc()

		result := &model.ExamResult{
			UserID:        userID,
			ExamID:        exam.ID,
			CourseID:      courseID,
			Score:         score,
			Total:         total,
			Answers:       answers,
			AutoSubmitted: autoSubmitted,
			CompletedAt:   time.Now(),
		}
		if err := s.ResultRepo.Create(result); err != nil {
			logger.Log.Error("failed to persist exam result",
				zap.Uint("userID", userID),
				zap.String("examID", exam.ID),
				zap.Error(err))
		}

		logger.Log.Info("exam finished",
			zap.Uint("userID", userID),
			zap.String("examID", exam.ID),
			zap.Int("score", score),
			zap.Int("total", total),
			zap.Bool("autoSubmitted", autoSubmitted))
	}
}

func (s *ExamService) session(userID uint) (*ExamSession, error) {
	session, ok := s.Sessions.Get(userID)
	if !ok {
		return nil, util.ErrNoActiveSession
	}
	return session, nil
}

func (s *ExamService) View(userID uint) (ExamSessionView, error) {
	session, err := s.session(userID)
	if err != nil {
		return ExamSessionView{}, err
	}
	return session.View(), nil
}

func (s *ExamService) SelectAnswer(userID uint, questionID string, answer model.AnswerOption) (ExamSessionView, error) {
	session, err := s.session(userID)
	if err != nil {
		return ExamSessionView{}, err
	}
	session.SelectAnswer(questionID, answer)
	return session.View(), nil
}

func (s *ExamService) Navigate(userID uint, delta int) (ExamSessionView, error) {
	session, err := s.session(userID)
	if err != nil {
		return ExamSessionView{}, err
	}
	session.Navigate(delta)
	return session.View(), nil
}

// Submit finishes the session on the student's behalf. When the countdown
// already won the race the recorded result is returned instead of grading
// twice.
func (s *ExamService) Submit(userID uint) (ExamSessionView, error) {
	session, err := s.session(userID)
	if err != nil {
		return ExamSessionView{}, err
	}
	session.Submit()
	view := session.View()
	s.Sessions.Remove(userID)
	return view, nil
}

// Abandon discards the session without grading.
func (s *ExamService) Abandon(userID uint) error {
	session, err := s.session(userID)
	if err != nil {
		return err
	}
	if session.Abandon() {
		monitoring.ExamSessionsFinished.WithLabelValues("abandoned").Inc()
	}
	s.Sessions.Remove(userID)
	return nil
}

func (s *ExamService) ResultsForUser(userID uint) ([]model.ExamResult, error) {
	return s.ResultRepo.ListByUser(userID)
}

func (s *ExamService) ResultsForExam(examID string) ([]model.ExamResult, error) {
	return s.ResultRepo.ListByExam(examID)
}
