package service

import (
	"context"
	"encoding/json"
	"time"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const courseCacheTTL = 5 * time.Minute

func courseCacheKey(courseID string) string {
	return "course:" + courseID
}

func courseListCacheKey(grade model.Grade) string {
	return "courses:grade:" + string(grade)
}

// CourseService 课程目录的读写与缓存
type CourseService struct {
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
	Redis      *redis.Client
	Storage    *StorageService
	AI         *AIService
	Notifier   *NotificationService
}

func NewCourseService(courseRepo *repository.CourseRepository, userRepo *repository.UserRepository,
	rdb *redis.Client, storage *StorageService, ai *AIService, notifier *NotificationService) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		UserRepo:   userRepo,
		Redis:      rdb,
		Storage:    storage,
		AI:         ai,
		Notifier:   notifier,
	}
}

// ListForGrade returns the catalog for one grade, redis cache-aside. The
// cached copy strips correct answers through the model's json tags, so it is
// only safe to serve to students, never to reuse for grading.
func (s *CourseService) ListForGrade(ctx context.Context, grade model.Grade) ([]model.Course, error) {
	if s.Redis != nil {
		raw, err := s.Redis.Get(ctx, courseListCacheKey(grade)).Bytes()
		if err == nil {
			var courses []model.Course
			if json.Unmarshal(raw, &courses) == nil {
				return courses, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("course cache read failed", zap.Error(err))
		}
	}

	courses, err := s.CourseRepo.ListByGrade(grade)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(courses); err == nil {
			if err := s.Redis.Set(ctx, courseListCacheKey(grade), raw, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("course cache write failed", zap.Error(err))
			}
		}
	}
	return courses, nil
}

func (s *CourseService) ListAll() ([]model.Course, error) {
	return s.CourseRepo.ListAll()
}

// GetForUser loads one course and enforces the paywall. Lecture content for
// uploaded files is resolved to a fetchable URL here, right before delivery.
func (s *CourseService) GetForUser(ctx context.Context, userID uint, courseID string) (*model.Course, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if !user.CanAccess(course) {
		return nil, util.ErrCourseLocked
	}

	for i := range course.Lectures {
		lec := &course.Lectures[i]
		if lec.Source != model.SourceUpload || lec.ObjectKey == "" {
			continue
		}
		resolved, err := s.Storage.ResolveURL(ctx, lec.ObjectKey)
		if err != nil {
			logger.Log.Warn("failed to resolve lecture url",
				zap.String("lectureID", lec.ID),
				zap.Error(err))
			continue
		}
		lec.URL = resolved
	}
	return course, nil
}

// Create stores a new course. An empty description is filled in by the AI
// collaborator, and students of the target grade get a notification.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	if course.Description == "" {
		course.Description = s.AI.GenerateCourseDescription(course.Title)
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return err
	}

	s.evictCache(ctx, course)
	if s.Notifier != nil {
		s.Notifier.NotifyNewCourse(course)
	}

	logger.Log.Info("course created",
		zap.String("courseID", course.ID),
		zap.String("title", course.Title),
		zap.String("grade", string(course.Grade)))
	return nil
}

func (s *CourseService) Update(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Save(course); err != nil {
		return err
	}
	s.evictCache(ctx, course)
	return nil
}

func (s *CourseService) Delete(ctx context.Context, courseID string) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return util.ErrCourseNotFound
	}
	if err := s.CourseRepo.Delete(courseID); err != nil {
		return err
	}
	s.evictCache(ctx, course)
	return nil
}

// AttachUploadedLecture stores a lecture file already saved to a temp path
// and appends the lecture to the course. Video durations are probed with
// ffprobe; a probe failure leaves the duration at zero.
func (s *CourseService) AttachUploadedLecture(ctx context.Context, courseID string, lecture *model.Lecture,
	tempPath, fileName, contentType string) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return util.ErrCourseNotFound
	}

	lecture.ID = model.GenerateUUID()
	lecture.CourseID = courseID
	lecture.Source = model.SourceUpload
	lecture.FileName = fileName
	lecture.Position = len(course.Lectures)

	if lecture.Type == model.LectureVideo || lecture.Type == model.LectureAudio {
		if info, err := util.ProbeMedia(tempPath); err == nil {
			lecture.Duration = info.Duration
		} else {
			logger.Log.Warn("media probe failed",
				zap.String("file", fileName),
				zap.Error(err))
		}
	}

	key := LectureObjectKey(courseID, lecture.ID, fileName)
	if _, err := s.Storage.UploadFile(ctx, key, tempPath, contentType); err != nil {
		return err
	}
	lecture.ObjectKey = key

	course.Lectures = append(course.Lectures, *lecture)
	if err := s.CourseRepo.Save(course); err != nil {
		return err
	}
	s.evictCache(ctx, course)
	return nil
}

func (s *CourseService) evictCache(ctx context.Context, course *model.Course) {
	if s.Redis == nil {
		return
	}
	keys := []string{courseCacheKey(course.ID), courseListCacheKey(course.Grade)}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil && err != redis.Nil {
		logger.Log.Warn("course cache eviction failed", zap.Error(err))
	}
}
