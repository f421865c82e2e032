package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/database"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
)

type sessionFinder interface {
	FindByID(ctx context.Context, id string) (*models.ClassSession, error)
}

type reportWriter interface {
	Create(ctx context.Context, report *models.Report) error
	UpdateBySession(ctx context.Context, report *models.Report) error
}

type materialLookup interface {
	FindByID(ctx context.Context, id string) (*models.Textbook, error)
	FindByName(ctx context.Context, name string) (*models.Textbook, error)
}

// EvaluationService stores teacher assessments as session reports.
type EvaluationService struct {
	sessions  sessionFinder
	reports   reportWriter
	materials materialLookup
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEvaluationService constructs an EvaluationService.
func NewEvaluationService(sessions sessionFinder, reports reportWriter, materials materialLookup, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{sessions: sessions, reports: reports, materials: materials, cache: cache, validator: validate, logger: logger}
}

// Submit creates the report of a session. When the session already has
// one, the existing report is overwritten exactly once.
func (s *EvaluationService) Submit(ctx context.Context, req dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if _, err := s.sessions.FindByID(ctx, req.SessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	report := &models.Report{
		SessionID:         req.SessionID,
		ActualStudentName: strings.TrimSpace(req.StudentName),
		Scores:            models.Scores(req.Scores),
		Feedback:          req.Feedback,
	}
	if err := s.resolveMaterial(ctx, report, req); err != nil {
		return nil, err
	}

	created := true
	if err := s.reports.Create(ctx, report); err != nil {
		if !database.IsUniqueViolation(err) {
			s.logger.Error("create report failed", zap.String("session_id", req.SessionID), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to submit report")
		}
		created = false
		if err := s.reports.UpdateBySession(ctx, report); err != nil {
			s.logger.Error("update report after conflict failed", zap.String("session_id", req.SessionID), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to update report")
		}
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, AdminSessionsCachePattern); err != nil {
			s.logger.Warn("failed to invalidate session cache", zap.Error(err))
		}
	}

	s.logger.Info("report stored", zap.String("session_id", req.SessionID), zap.String("report_id", report.ID), zap.Bool("created", created))
	return &dto.EvaluationResponse{ReportID: report.ID, Created: created}, nil
}

func (s *EvaluationService) validate(req dto.SubmitEvaluationRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluation payload")
	}
	for skill, score := range req.Scores {
		if strings.TrimSpace(skill) == "" {
			return appErrors.Clone(appErrors.ErrValidation, "score dimension must not be blank")
		}
		if score < models.MinScore || score > models.MaxScore {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("score for %s must be between %d and %d", skill, models.MinScore, models.MaxScore))
		}
	}
	return nil
}

// resolveMaterial links the report to a textbook. An explicit id must
// exist; otherwise the chosen name is matched. The name is kept either way.
func (s *EvaluationService) resolveMaterial(ctx context.Context, report *models.Report, req dto.SubmitEvaluationRequest) error {
	name := strings.TrimSpace(req.MaterialName)
	if name != "" {
		report.FallbackMaterialName = &name
	}

	if req.MaterialID != nil && *req.MaterialID != "" {
		tb, err := s.materials.FindByID(ctx, *req.MaterialID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrValidation, "material not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
		}
		report.MaterialID = &tb.ID
		if report.FallbackMaterialName == nil {
			report.FallbackMaterialName = &tb.Name
		}
		return nil
	}

	if name == "" {
		return nil
	}
	tb, err := s.materials.FindByName(ctx, name)
	switch {
	case err == nil:
		report.MaterialID = &tb.ID
	case errors.Is(err, sql.ErrNoRows):
	default:
		s.logger.Warn("material lookup by name failed", zap.String("name", name), zap.Error(err))
	}
	return nil
}
