package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
)

const reportColumns = `rp.id, rp.session_id, rp.actual_student_name, rp.scores, rp.feedback, rp.material_id,
        rp.fallback_material_name, rp.created_at, rp.updated_at`

// ReportRepository persists teacher evaluation reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new repository instance.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a report. A second report for the same session fails with
// the driver's unique violation error wrapped.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now
	if report.Scores == nil {
		report.Scores = models.Scores{}
	}
	const query = `INSERT INTO reports (id, session_id, actual_student_name, scores, feedback, material_id, fallback_material_name, created_at, updated_at)
        VALUES (:id, :session_id, :actual_student_name, :scores, :feedback, :material_id, :fallback_material_name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// UpdateBySession overwrites the report of a session and loads its id.
func (r *ReportRepository) UpdateBySession(ctx context.Context, report *models.Report) error {
	report.UpdatedAt = time.Now().UTC()
	if report.Scores == nil {
		report.Scores = models.Scores{}
	}
	const query = `UPDATE reports SET actual_student_name = $2, scores = $3, feedback = $4, material_id = $5,
        fallback_material_name = $6, updated_at = $7 WHERE session_id = $1 RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query,
		report.SessionID, report.ActualStudentName, report.Scores, report.Feedback,
		report.MaterialID, report.FallbackMaterialName, report.UpdatedAt,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("update report for session %s: %w", report.SessionID, err)
	}
	return nil
}

// FindBySession returns the report attached to a session.
func (r *ReportRepository) FindBySession(ctx context.Context, sessionID string) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports rp WHERE rp.session_id = $1`
	var report models.Report
	if err := r.db.GetContext(ctx, &report, query, sessionID); err != nil {
		return nil, err
	}
	return &report, nil
}

// FindDetail returns a report joined with its session and linked textbook.
func (r *ReportRepository) FindDetail(ctx context.Context, id string) (*models.ReportDetail, error) {
	query := `SELECT ` + reportColumns + `, s.course_name, s.teacher_name, s.class_time_saudi, s.class_time_bj,
        tb.name AS material_name, tb.book_id
        FROM reports rp
        JOIN class_sessions s ON s.id = rp.session_id
        LEFT JOIN textbooks tb ON tb.id = rp.material_id
        WHERE rp.id = $1`
	var detail models.ReportDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}
