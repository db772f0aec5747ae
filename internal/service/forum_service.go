package service

import (
	"context"
	"io"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// ForumService 按年级分版块的班级论坛
type ForumService struct {
	ForumRepo *repository.ForumRepository
	UserRepo  *repository.UserRepository
	Settings  *SettingsService
	Storage   *StorageService
}

func NewForumService(forumRepo *repository.ForumRepository, userRepo *repository.UserRepository,
	settings *SettingsService, storage *StorageService) *ForumService {
	return &ForumService{ForumRepo: forumRepo, UserRepo: userRepo, Settings: settings, Storage: storage}
}

// Messages lists the newest messages for a grade. Students only see their
// own grade's board; admins may read any.
func (s *ForumService) Messages(userID uint, grade model.Grade, limit int) ([]model.ForumMessage, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.Role == model.Student && user.Grade != grade {
		return nil, util.ErrPermissionDenied
	}
	return s.ForumRepo.ListByGrade(grade, limit)
}

// PostRequest carries a new forum message; Media is nil for text-only posts.
type PostRequest struct {
	Content   string
	MediaType model.ForumMediaType
	FileName  string
	Media     io.Reader
	MediaSize int64
	MimeType  string
}

// Post publishes a message to the author's grade board. Blocked users and
// locked boards are rejected; admins post past the lock.
func (s *ForumService) Post(ctx context.Context, userID uint, req PostRequest) (*model.ForumMessage, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.IsBlocked {
		return nil, util.ErrUserBlocked
	}
	if user.Role == model.Student && s.Settings.ForumLockedFor(user.Grade) {
		return nil, util.ErrForumLocked
	}

	msg := &model.ForumMessage{
		UserID:   user.ID,
		UserName: user.FullName,
		UserRole: user.Role,
		Grade:    user.Grade,
		Content:  req.Content,
	}

	if req.Media != nil {
		msg.MediaType = req.MediaType
		msg.FileName = req.FileName
		key := ForumObjectKey(string(user.Grade), model.GenerateUUID(), req.FileName)
		if _, err := s.Storage.Upload(ctx, key, req.Media, req.MediaSize, req.MimeType); err != nil {
			return nil, err
		}
		url, err := s.Storage.ResolveURL(ctx, key)
		if err != nil {
			logger.Log.Warn("failed to resolve forum media url", zap.String("key", key), zap.Error(err))
			url = key
		}
		msg.MediaURL = url
	}

	if err := s.ForumRepo.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Remove deletes a message. Authors may delete their own posts, admins may
// delete anything.
func (s *ForumService) Remove(userID uint, messageID uint) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}

	msg, err := s.ForumRepo.FindByID(messageID)
	if err != nil {
		return err
	}
	if user.Role != model.Admin && msg.UserID != user.ID {
		return util.ErrPermissionDenied
	}
	return s.ForumRepo.Delete(messageID)
}
