package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
)

// AdminSessionLimit caps the admin session list.
const AdminSessionLimit = 100

type sessionLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.SessionListItem, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.SessionListItem, error)
}

type sessionCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// SessionService lists class sessions for admins and teachers.
type SessionService struct {
	repo   sessionLister
	cache  sessionCache
	logger *zap.Logger
}

// NewSessionService constructs a SessionService. cache may be nil.
func NewSessionService(repo sessionLister, cache sessionCache, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, cache: cache, logger: logger}
}

// ListRecent returns the latest sessions by class time. The second result
// reports whether the list came from cache.
func (s *SessionService) ListRecent(ctx context.Context) ([]models.SessionListItem, bool, error) {
	if s.cache != nil {
		var cached []models.SessionListItem
		hit, err := s.cache.Get(ctx, AdminSessionsCacheKey, &cached)
		if err == nil && hit {
			return cached, true, nil
		}
	}

	items, err := s.repo.ListRecent(ctx, AdminSessionLimit)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch list")
	}
	if items == nil {
		items = []models.SessionListItem{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, AdminSessionsCacheKey, items, 0); err != nil {
			s.logger.Debug("session list not cached", zap.Error(err))
		}
	}
	return items, false, nil
}

// ListForTeacher returns a teacher's sessions in class time order.
func (s *SessionService) ListForTeacher(ctx context.Context, teacherID string) ([]models.SessionListItem, error) {
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher id is required")
	}
	items, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher sessions")
	}
	if items == nil {
		items = []models.SessionListItem{}
	}
	return items, nil
}
