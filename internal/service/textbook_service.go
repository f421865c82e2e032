package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
)

type textbookRepository interface {
	List(ctx context.Context) ([]models.TextbookSummary, error)
	FindByID(ctx context.Context, id string) (*models.Textbook, error)
	Delete(ctx context.Context, id string) error
}

// TextbookService exposes the textbook catalogue.
type TextbookService struct {
	repo   textbookRepository
	cache  cacheInvalidator
	logger *zap.Logger
}

// NewTextbookService constructs a TextbookService.
func NewTextbookService(repo textbookRepository, cache cacheInvalidator, logger *zap.Logger) *TextbookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextbookService{repo: repo, cache: cache, logger: logger}
}

// List returns every textbook, most recently updated first.
func (s *TextbookService) List(ctx context.Context) ([]models.TextbookSummary, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch materials")
	}
	if items == nil {
		items = []models.TextbookSummary{}
	}
	return items, nil
}

// Get returns a textbook with its questions, modules and rules.
func (s *TextbookService) Get(ctx context.Context, id string) (*models.Textbook, error) {
	tb, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "textbook not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load textbook")
	}
	return tb, nil
}

// Delete removes a textbook and its children.
func (s *TextbookService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "textbook not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to delete")
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, AdminSessionsCachePattern); err != nil {
			s.logger.Warn("failed to invalidate session cache", zap.Error(err))
		}
	}
	s.logger.Info("textbook deleted", zap.String("textbook_id", id))
	return nil
}
