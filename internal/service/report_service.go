package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/storage"
)

type reportReader interface {
	FindDetail(ctx context.Context, id string) (*models.ReportDetail, error)
	FindBySession(ctx context.Context, sessionID string) (*models.Report, error)
}

type moduleLookup interface {
	FindByName(ctx context.Context, name string) (*models.Textbook, error)
	ListModules(ctx context.Context, textbookID string) ([]models.KnowledgeModule, error)
}

type tokenSigner interface {
	Generate(subject string) (string, time.Time, error)
	Parse(token string) (string, time.Time, error)
}

// ReportConfig tunes report links.
type ReportConfig struct {
	ReportBaseURL string
}

// ReportService reads stored reports and issues public share links.
type ReportService struct {
	reports   reportReader
	textbooks moduleLookup
	signer    tokenSigner
	cfg       ReportConfig
	logger    *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(reports reportReader, textbooks moduleLookup, signer tokenSigner, cfg ReportConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{reports: reports, textbooks: textbooks, signer: signer, cfg: cfg, logger: logger}
}

// Get returns a report with its session fields and the modules of the
// material it was taught with.
func (s *ReportService) Get(ctx context.Context, id string) (*dto.ReportView, error) {
	detail, err := s.reports.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	if detail.Scores == nil {
		detail.Scores = models.Scores{}
	}
	return &dto.ReportView{ReportDetail: *detail, Modules: s.modulesFor(ctx, detail)}, nil
}

// ForSession returns the report already stored for a session.
func (s *ReportService) ForSession(ctx context.Context, sessionID string) (*models.Report, error) {
	report, err := s.reports.FindBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	return report, nil
}

// Share issues an expiring public link to a report.
func (s *ReportService) Share(ctx context.Context, id string) (*dto.ReportShareResponse, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Generate(id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign report link")
	}
	return &dto.ReportShareResponse{
		Token:     token,
		URL:       s.cfg.ReportBaseURL + "/report/shared/" + token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetShared resolves a share token into its report.
func (s *ReportService) GetShared(ctx context.Context, token string) (*dto.ReportView, error) {
	id, _, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "report link expired")
		}
		s.logger.Debug("rejected share token", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Report not found")
	}
	return s.Get(ctx, id)
}

func (s *ReportService) modulesFor(ctx context.Context, detail *models.ReportDetail) []models.KnowledgeModule {
	textbookID := ""
	if detail.MaterialID != nil {
		textbookID = *detail.MaterialID
	} else if detail.FallbackMaterialName != nil && *detail.FallbackMaterialName != "" {
		tb, err := s.textbooks.FindByName(ctx, *detail.FallbackMaterialName)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				s.logger.Warn("material lookup by name failed", zap.String("report_id", detail.ID), zap.Error(err))
			}
			return []models.KnowledgeModule{}
		}
		textbookID = tb.ID
	}
	if textbookID == "" {
		return []models.KnowledgeModule{}
	}

	modules, err := s.textbooks.ListModules(ctx, textbookID)
	if err != nil {
		s.logger.Warn("failed to load report modules", zap.String("report_id", detail.ID), zap.Error(err))
		return []models.KnowledgeModule{}
	}
	if modules == nil {
		modules = []models.KnowledgeModule{}
	}
	return modules
}
