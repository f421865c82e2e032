package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/export"
)

// ExportTimeLayout renders class times in the export.
const ExportTimeLayout = "1/2/2006, 3:04:05 PM"

type exportSource interface {
	ListForExport(ctx context.Context) ([]models.SessionExportRecord, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Location      *time.Location
	ReportBaseURL string
}

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService projects sessions with their reports into flat rows and
// renders them into documents.
type ExportService struct {
	sessions exportSource
	metrics  *MetricsService
	cfg      ExportConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(sessions exportSource, metrics *MetricsService, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{sessions: sessions, metrics: metrics, cfg: cfg, logger: logger, now: time.Now}
}

// Rows returns one export row per session, newest class first.
func (s *ExportService) Rows(ctx context.Context) ([]dto.ExportRow, error) {
	records, err := s.sessions.ListForExport(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export data")
	}
	rows := make([]dto.ExportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, s.project(rec))
	}
	return rows, nil
}

// Render builds the export in the requested format.
func (s *ExportService) Render(ctx context.Context, format export.Format) (*ExportFile, error) {
	exporter, err := export.ForFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported export format")
	}
	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Title: "Class Sessions", Headers: dto.ExportHeaders, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, row.Values())
	}
	data, err := exporter.Render(dataset)
	if err != nil {
		s.logger.Error("export render failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.metrics.IncExport(string(format))

	return &ExportFile{
		Filename:    "sessions_" + s.now().In(s.cfg.Location).Format("20060102_150405") + "." + exporter.Extension(),
		ContentType: exporter.ContentType(),
		Data:        data,
	}, nil
}

func (s *ExportService) project(rec models.SessionExportRecord) dto.ExportRow {
	row := dto.ExportRow{
		SessionID:       rec.ID,
		CourseName:      rec.CourseName,
		Status:          dto.ExportStatusPending,
		BookingType:     rec.BookingType,
		ClassTimeSaudi:  s.formatTime(rec.ClassTimeSaudi),
		ClassTimeBJ:     rec.ClassTimeBJ,
		TeacherName:     rec.TeacherName,
		StudentOriginal: rec.OriginalStudentName,
		StudentActual:   deref(rec.ActualStudentName),
		Material:        firstNonEmpty(deref(rec.MaterialName), deref(rec.FallbackMaterialName), dto.ExportMaterialMissing),
		Feedback:        deref(rec.Feedback),
	}
	if id := deref(rec.ReportID); id != "" {
		row.Status = dto.ExportStatusCompleted
		row.ReportLink = s.cfg.ReportBaseURL + "/report/" + id
	}
	return row
}

func (s *ExportService) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(s.cfg.Location).Format(ExportTimeLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
