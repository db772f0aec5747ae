package service

import (
	"context"
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/pkg/logger"
	"english_edu_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SweepExpired partitions courses by their expiry: a course survives iff it
// has no expiry date or the expiry is still ahead of now. Pure, no side
// effects.
func SweepExpired(courses []model.Course, now time.Time) (surviving, expired []model.Course) {
	for i := range courses {
		if courses[i].Expired(now) {
			expired = append(expired, courses[i])
		} else {
			surviving = append(surviving, courses[i])
		}
	}
	return surviving, expired
}

// SweeperService removes courses past their expiry timestamp. Deletion is
// unconditional and irreversible; there is no recovery window.
type SweeperService struct {
	CourseRepo *repository.CourseRepository
	Redis      *redis.Client
	Notifier   *NotificationService
}

func NewSweeperService(courseRepo *repository.CourseRepository, rdb *redis.Client, notifier *NotificationService) *SweeperService {
	return &SweeperService{CourseRepo: courseRepo, Redis: rdb, Notifier: notifier}
}

// Sweep runs one pass over the live course collection. Removed courses are
// also evicted from the redis course cache so no reader keeps serving a
// course that no longer exists.
func (s *SweeperService) Sweep(now time.Time) (removed int, err error) {
	courses, err := s.CourseRepo.ListAll()
	if err != nil {
		return 0, err
	}

	_, expired := SweepExpired(courses, now)
	for i := range expired {
		course := &expired[i]
		if err := s.CourseRepo.Delete(course.ID); err != nil {
			logger.Log.Error("failed to delete expired course",
				zap.String("courseID", course.ID),
				zap.Error(err))
			continue
		}

		s.evictCourseCache(course)
		monitoring.CoursesSwept.Inc()
		removed++

		logger.Log.Info("expired course removed",
			zap.String("courseID", course.ID),
			zap.String("title", course.Title),
			zap.Timep("expiry", course.ExpiryDate))

		if s.Notifier != nil {
			s.Notifier.Notify(course.Grade, "Course removed",
				"The course \""+course.Title+"\" has reached its end date and is no longer available.")
		}
	}
	return removed, nil
}

func (s *SweeperService) evictCourseCache(course *model.Course) {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	keys := []string{
		courseCacheKey(course.ID),
		courseListCacheKey(course.Grade),
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil && err != redis.Nil {
		logger.Log.Warn("failed to evict course cache", zap.Error(err))
	}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. The caller owns the goroutine.
func (s *SweeperService) Run(ctx context.Context, interval time.Duration) {
	if _, err := s.Sweep(time.Now()); err != nil {
		logger.Log.Error("initial course sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(time.Now()); err != nil {
				logger.Log.Error("course sweep failed", zap.Error(err))
			}
		}
	}
}
