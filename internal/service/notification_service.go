package service

import (
	"context"
	"encoding/json"
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/pkg/logger"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const deadlineWarningWindow = 24 * time.Hour

// notificationChannel is the redis pub/sub channel per grade; connected
// clients subscribe to their own grade.
func notificationChannel(grade model.Grade) string {
	return "notifications:" + string(grade)
}

type Notification struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Grade model.Grade `json:"grade"`
	At    time.Time   `json:"at"`
}

// NotificationService delivers fire-and-forget alerts. Failures are logged
// and swallowed; nothing in the platform ever waits on a notification.
type NotificationService struct {
	Redis      *redis.Client
	CourseRepo *repository.CourseRepository

	mu       sync.Mutex
	notified map[string]struct{} // assignment IDs already warned about
}

func NewNotificationService(rdb *redis.Client, courseRepo *repository.CourseRepository) *NotificationService {
	return &NotificationService{
		Redis:      rdb,
		CourseRepo: courseRepo,
		notified:   make(map[string]struct{}),
	}
}

// Notify publishes an alert to every connected student of the grade.
func (s *NotificationService) Notify(grade model.Grade, title, body string) {
	n := Notification{Title: title, Body: body, Grade: grade, At: time.Now()}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}

	logger.Log.Info("notification",
		zap.String("grade", string(grade)),
		zap.String("title", title))

	if s.Redis == nil {
		return
	}
	if err := s.Redis.Publish(context.Background(), notificationChannel(grade), payload).Err(); err != nil {
		logger.Log.Warn("failed to publish notification", zap.Error(err))
	}
}

// NotifyNewCourse announces a freshly published course to its grade.
func (s *NotificationService) NotifyNewCourse(course *model.Course) {
	s.Notify(course.Grade, "New course available 📚",
		"A new course was added: "+course.Title+". Start studying now!")
}

// CheckAssignmentDeadlines warns each grade once per assignment when a
// deadline comes within 24 hours.
func (s *NotificationService) CheckAssignmentDeadlines(now time.Time) error {
	courses, err := s.CourseRepo.ListAll()
	if err != nil {
		return err
	}

	for i := range courses {
		course := &courses[i]
		for j := range course.Assignments {
			a := &course.Assignments[j]
			if !a.DueWithin(now, deadlineWarningWindow) {
				continue
			}

			s.mu.Lock()
			_, seen := s.notified[a.ID]
			if !seen {
				s.notified[a.ID] = struct{}{}
			}
			s.mu.Unlock()
			if seen {
				continue
			}

			s.Notify(course.Grade, "Assignment due soon ✍️",
				"The assignment \""+a.Title+"\" in "+course.Title+" is due within 24 hours.")
		}
	}
	return nil
}

// RunDeadlineChecker checks once immediately, then on every tick until the
// context is cancelled.
func (s *NotificationService) RunDeadlineChecker(ctx context.Context, interval time.Duration) {
	if err := s.CheckAssignmentDeadlines(time.Now()); err != nil {
		logger.Log.Error("deadline check failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.CheckAssignmentDeadlines(time.Now()); err != nil {
				logger.Log.Error("deadline check failed", zap.Error(err))
			}
		}
	}
}
