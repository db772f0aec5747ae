package service

import (
	"encoding/json"
	"sync"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// SettingsService holds the platform settings document. Reads serve an
// in-memory copy; writes go through to the settings table and then refresh
// the copy. A missing or corrupt row degrades to the defaults, never an
// error, so the public pages always render.
type SettingsService struct {
	Repo *repository.SettingRepository

	mu      sync.RWMutex
	current model.PlatformSettings
	loaded  bool
}

func NewSettingsService(repo *repository.SettingRepository) *SettingsService {
	return &SettingsService{Repo: repo}
}

func (s *SettingsService) Get() model.PlatformSettings {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.current
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.current = s.load()
		s.loaded = true
	}
	return s.current
}

func (s *SettingsService) load() model.PlatformSettings {
	raw, err := s.Repo.Get(model.SettingKeyConfig)
	if err != nil {
		logger.Log.Error("failed to load platform settings", zap.Error(err))
		return model.DefaultPlatformSettings()
	}
	if raw == nil {
		return model.DefaultPlatformSettings()
	}

	settings := model.DefaultPlatformSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		logger.Log.Error("platform settings row is corrupt, using defaults", zap.Error(err))
		return model.DefaultPlatformSettings()
	}
	return settings
}

func (s *SettingsService) Save(settings model.PlatformSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := s.Repo.Save(model.SettingKeyConfig, raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = settings
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// SetForumLock flips the forum lock for one grade and persists the document.
func (s *SettingsService) SetForumLock(grade model.Grade, locked bool) error {
	settings := s.Get()
	// the map is shared with the cached copy, mutate a fresh one
	locks := make(map[model.Grade]bool, len(settings.ForumLocked)+1)
	for g, v := range settings.ForumLocked {
		locks[g] = v
	}
	locks[grade] = locked
	settings.ForumLocked = locks
	return s.Save(settings)
}

func (s *SettingsService) ForumLockedFor(grade model.Grade) bool {
	settings := s.Get()
	return settings.ForumLockedFor(grade)
}
