package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/workbook"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/spreadsheet"
)

type sessionWriter interface {
	Upsert(ctx context.Context, session *models.ClassSession) (bool, error)
	UpsertAll(ctx context.Context, sessions []models.ClassSession) ([]bool, error)
}

type dateNormalizer interface {
	Normalize(value any) time.Time
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// ScheduleImportSummary reports what a schedule import wrote.
type ScheduleImportSummary struct {
	ImportedCount int `json:"importedCount"`
	TotalRows     int `json:"totalRows"`
	Created       int `json:"created"`
	Updated       int `json:"updated"`
	Skipped       int `json:"skipped"`
}

// ScheduleImportConfig tunes schedule ingestion.
type ScheduleImportConfig struct {
	// Atomic stores the whole file in one transaction instead of one
	// upsert per row.
	Atomic bool
}

// ScheduleImportService turns a schedule workbook into class sessions.
type ScheduleImportService struct {
	sessions   sessionWriter
	normalizer dateNormalizer
	cache      cacheInvalidator
	metrics    *MetricsService
	cfg        ScheduleImportConfig
	logger     *zap.Logger
}

// NewScheduleImportService constructs the schedule pipeline.
func NewScheduleImportService(sessions sessionWriter, normalizer dateNormalizer, cache cacheInvalidator, metrics *MetricsService, cfg ScheduleImportConfig, logger *zap.Logger) *ScheduleImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleImportService{sessions: sessions, normalizer: normalizer, cache: cache, metrics: metrics, cfg: cfg, logger: logger}
}

// Import decodes the first sheet of data and upserts one session per row
// carrying an identity key. Rows without a key are skipped.
func (s *ScheduleImportService) Import(ctx context.Context, data []byte) (summary *ScheduleImportSummary, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveImport(PipelineSchedule, time.Since(start), err) }()

	wb, err := spreadsheet.Decode(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrImportFailed.Code, appErrors.ErrImportFailed.Status, "failed to read schedule workbook")
	}
	sheet, ok := wb.Sheet(0)
	if !ok || len(sheet.Rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Excel is empty")
	}

	summary = &ScheduleImportSummary{TotalRows: len(sheet.Rows)}
	sessions := make([]models.ClassSession, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		parsed, ok := workbook.ParseScheduleRow(row)
		if !ok {
			summary.Skipped++
			continue
		}
		sessions = append(sessions, s.toSession(parsed))
	}
	s.metrics.AddImportRows(PipelineSchedule, OutcomeSkipped, summary.Skipped)

	if s.cfg.Atomic {
		err = s.writeAll(ctx, sessions, summary)
	} else {
		err = s.writeEach(ctx, sessions, summary)
	}
	s.metrics.AddImportRows(PipelineSchedule, OutcomeCreated, summary.Created)
	s.metrics.AddImportRows(PipelineSchedule, OutcomeUpdated, summary.Updated)

	if s.cache != nil && summary.Created+summary.Updated > 0 {
		if cacheErr := s.cache.Invalidate(ctx, AdminSessionsCachePattern); cacheErr != nil {
			s.logger.Warn("failed to invalidate session cache", zap.Error(cacheErr))
		}
	}
	if err != nil {
		return nil, err
	}

	summary.ImportedCount = summary.Created + summary.Updated
	s.logger.Info("schedule imported",
		zap.Int("total_rows", summary.TotalRows),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (s *ScheduleImportService) writeEach(ctx context.Context, sessions []models.ClassSession, summary *ScheduleImportSummary) error {
	for i := range sessions {
		created, err := s.sessions.Upsert(ctx, &sessions[i])
		if err != nil {
			s.metrics.AddImportRows(PipelineSchedule, OutcomeFailed, 1)
			s.logger.Error("schedule row upsert failed", zap.String("session_id", sessions[i].ID), zap.Error(err))
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session "+sessions[i].ID)
		}
		tally(summary, created)
	}
	return nil
}

func (s *ScheduleImportService) writeAll(ctx context.Context, sessions []models.ClassSession, summary *ScheduleImportSummary) error {
	if len(sessions) == 0 {
		return nil
	}
	results, err := s.sessions.UpsertAll(ctx, sessions)
	if err != nil {
		s.metrics.AddImportRows(PipelineSchedule, OutcomeFailed, len(sessions))
		s.logger.Error("schedule batch upsert failed", zap.Int("rows", len(sessions)), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save sessions")
	}
	for _, created := range results {
		tally(summary, created)
	}
	return nil
}

func tally(summary *ScheduleImportSummary, created bool) {
	if created {
		summary.Created++
	} else {
		summary.Updated++
	}
}

func (s *ScheduleImportService) toSession(row workbook.ScheduleRow) models.ClassSession {
	return models.ClassSession{
		ID:                  row.SessionID,
		CourseName:          row.CourseName,
		BookingType:         row.BookingType,
		ClassTimeBJ:         row.ClassTimeBJ,
		ClassTimeSaudi:      s.normalizer.Normalize(row.ClassTime),
		TeacherID:           row.TeacherID,
		TeacherName:         row.TeacherName,
		OriginalStudentName: row.StudentName,
		StudentID:           row.StudentID,
		Talk51ID:            row.Talk51ID,
		MeritHubID:          row.MeritHubID,
		ExcelStatus:         row.Status,
	}
}
