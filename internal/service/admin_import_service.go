package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
)

type scheduleImporter interface {
	Import(ctx context.Context, data []byte) (*ScheduleImportSummary, error)
}

type textbookImporter interface {
	Import(ctx context.Context, data []byte) (*TextbookImportSummary, error)
}

// AdminImportService is the admin facing boundary of the workbook
// pipelines. It never returns an error; failures come back as results.
type AdminImportService struct {
	schedule scheduleImporter
	textbook textbookImporter
	logger   *zap.Logger
}

// NewAdminImportService constructs an AdminImportService.
func NewAdminImportService(schedule scheduleImporter, textbook textbookImporter, logger *zap.Logger) *AdminImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminImportService{schedule: schedule, textbook: textbook, logger: logger}
}

// UploadSchedule imports a schedule workbook.
func (s *AdminImportService) UploadSchedule(ctx context.Context, data []byte) dto.ActionResult {
	summary, err := s.schedule.Import(ctx, data)
	if err != nil {
		return s.failure("schedule", err)
	}
	return dto.ActionResult{
		Success: true,
		Message: fmt.Sprintf("Successfully imported %d sessions.", summary.ImportedCount),
		Data:    summary,
	}
}

// UploadTextbook imports a textbook workbook.
func (s *AdminImportService) UploadTextbook(ctx context.Context, data []byte) dto.ActionResult {
	summary, err := s.textbook.Import(ctx, data)
	if err != nil {
		return s.failure("textbook", err)
	}
	return dto.ActionResult{
		Success: true,
		Message: fmt.Sprintf("Textbook %q imported.", summary.Name),
		Data:    dto.TextbookImportData{ID: summary.ID, Name: summary.Name, BookID: summary.BookID},
	}
}

func (s *AdminImportService) failure(kind string, err error) dto.ActionResult {
	appErr := appErrors.FromError(err)
	s.logger.Warn("workbook import failed", zap.String("kind", kind), zap.String("code", appErr.Code), zap.Error(err))
	return dto.ActionResult{Success: false, Error: appErr.Error()}
}
