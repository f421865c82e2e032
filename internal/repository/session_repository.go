package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/database"
)

const sessionColumns = `s.id, s.course_name, s.booking_type, s.class_time_bj, s.class_time_saudi, s.teacher_id, s.teacher_name,
        s.original_student_name, s.student_id, s.talk51_id, s.merithub_id, s.excel_status, s.created_at, s.updated_at`

// upsertSession inserts or overwrites a session by id. xmax is zero only
// for freshly inserted tuples, which tells creates from updates.
const upsertSession = `INSERT INTO class_sessions (id, course_name, booking_type, class_time_bj, class_time_saudi, teacher_id, teacher_name,
        original_student_name, student_id, talk51_id, merithub_id, excel_status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
        ON CONFLICT (id) DO UPDATE SET course_name = EXCLUDED.course_name, booking_type = EXCLUDED.booking_type,
        class_time_bj = EXCLUDED.class_time_bj, class_time_saudi = EXCLUDED.class_time_saudi, teacher_id = EXCLUDED.teacher_id,
        teacher_name = EXCLUDED.teacher_name, original_student_name = EXCLUDED.original_student_name, student_id = EXCLUDED.student_id,
        talk51_id = EXCLUDED.talk51_id, merithub_id = EXCLUDED.merithub_id, excel_status = EXCLUDED.excel_status,
        updated_at = EXCLUDED.updated_at
        RETURNING (xmax = 0) AS created`

// SessionRepository persists class sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new repository instance.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Upsert writes one session atomically and reports whether it was created.
func (r *SessionRepository) Upsert(ctx context.Context, session *models.ClassSession) (bool, error) {
	return r.upsert(ctx, r.db, session)
}

// UpsertAll writes every session inside one transaction. Either all rows
// are stored or none.
func (r *SessionRepository) UpsertAll(ctx context.Context, sessions []models.ClassSession) ([]bool, error) {
	created := make([]bool, len(sessions))
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for i := range sessions {
			ok, err := r.upsert(ctx, tx, &sessions[i])
			if err != nil {
				return err
			}
			created[i] = ok
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *SessionRepository) upsert(ctx context.Context, exec sqlx.ExtContext, s *models.ClassSession) (bool, error) {
	now := time.Now().UTC()
	var created bool
	err := exec.QueryRowxContext(ctx, upsertSession,
		s.ID, s.CourseName, s.BookingType, s.ClassTimeBJ, s.ClassTimeSaudi, s.TeacherID, s.TeacherName,
		s.OriginalStudentName, s.StudentID, s.Talk51ID, s.MeritHubID, s.ExcelStatus, now,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert class session %s: %w", s.ID, err)
	}
	s.UpdatedAt = now
	if created {
		s.CreatedAt = now
	}
	return created, nil
}

// FindByID returns a session by its identity key.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.ClassSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM class_sessions s WHERE s.id = $1`
	var session models.ClassSession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListRecent returns the latest sessions by class time with their report id.
func (r *SessionRepository) ListRecent(ctx context.Context, limit int) ([]models.SessionListItem, error) {
	query := `SELECT ` + sessionColumns + `, rp.id AS report_id
        FROM class_sessions s LEFT JOIN reports rp ON rp.session_id = s.id
        ORDER BY s.class_time_saudi DESC LIMIT $1`
	var items []models.SessionListItem
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}
	return items, nil
}

// ListByTeacher returns a teacher's sessions in class time order.
func (r *SessionRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.SessionListItem, error) {
	query := `SELECT ` + sessionColumns + `, rp.id AS report_id
        FROM class_sessions s LEFT JOIN reports rp ON rp.session_id = s.id
        WHERE s.teacher_id = $1 ORDER BY s.class_time_saudi ASC`
	var items []models.SessionListItem
	if err := r.db.SelectContext(ctx, &items, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher sessions: %w", err)
	}
	return items, nil
}

// ListForExport returns every session joined with its report and the name
// of the linked textbook, newest class first.
func (r *SessionRepository) ListForExport(ctx context.Context) ([]models.SessionExportRecord, error) {
	query := `SELECT ` + sessionColumns + `, rp.id AS report_id, rp.actual_student_name, rp.feedback,
        rp.fallback_material_name, tb.name AS material_name
        FROM class_sessions s
        LEFT JOIN reports rp ON rp.session_id = s.id
        LEFT JOIN textbooks tb ON tb.id = rp.material_id
        ORDER BY s.class_time_saudi DESC`
	var records []models.SessionExportRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list export sessions: %w", err)
	}
	return records, nil
}
