package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
)

var sessionColumnNames = []string{"id", "course_name", "booking_type", "class_time_bj", "class_time_saudi", "teacher_id", "teacher_name",
	"original_student_name", "student_id", "talk51_id", "merithub_id", "excel_status", "created_at", "updated_at"}

func newSessionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sampleSession(id string) models.ClassSession {
	talk := "123"
	return models.ClassSession{
		ID:                  id,
		CourseName:          "Demo L1",
		BookingType:         "Trial",
		ClassTimeBJ:         "2024-01-01 10:00",
		ClassTimeSaudi:      time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC),
		TeacherID:           "T01",
		TeacherName:         "Teacher A",
		OriginalStudentName: "Student B",
		StudentID:           "S01",
		Talk51ID:            &talk,
		ExcelStatus:         "Planned",
	}
}

func TestSessionRepositoryUpsertReportsCreated(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	s := sampleSession("S-001")
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_sessions")).
		WithArgs("S-001", "Demo L1", "Trial", "2024-01-01 10:00", s.ClassTimeSaudi, "T01", "Teacher A",
			"Student B", "S01", "123", nil, "Planned", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"created"}).AddRow(false))

	created, err := repo.Upsert(context.Background(), &s)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, s.CreatedAt.IsZero())

	created, err = repo.Upsert(context.Background(), &s)
	require.NoError(t, err)
	assert.False(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryUpsertAllRollsBack(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"created"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_sessions")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.UpsertAll(context.Background(), []models.ClassSession{sampleSession("A"), sampleSession("B")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert class session B")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryUpsertAllCommits(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"created"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO class_sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"created"}).AddRow(false))
	mock.ExpectCommit()

	created, err := repo.UpsertAll(context.Background(), []models.ClassSession{sampleSession("A"), sampleSession("B")})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListRecent(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(append(append([]string{}, sessionColumnNames...), "report_id")).
		AddRow("S-2", "Demo", "Trial", "", now, "T01", "A", "B", "S01", nil, nil, "Planned", now, now, "r-1").
		AddRow("S-1", "Demo", "Trial", "", now, "T01", "A", "B", "S01", "123", "MH", "Planned", now, now, nil)
	mock.ExpectQuery("(?s)" + regexp.QuoteMeta("LEFT JOIN reports rp ON rp.session_id = s.id") + ".*" + regexp.QuoteMeta("ORDER BY s.class_time_saudi DESC LIMIT $1")).
		WithArgs(100).
		WillReturnRows(rows)

	items, err := repo.ListRecent(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].HasReport())
	assert.False(t, items[1].HasReport())
	require.NotNil(t, items[1].Talk51ID)
	assert.Equal(t, "123", *items[1].Talk51ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListForExport(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now()
	cols := append(append([]string{}, sessionColumnNames...), "report_id", "actual_student_name", "feedback", "fallback_material_name", "material_name")
	rows := sqlmock.NewRows(cols).
		AddRow("S-1", "Demo", "Trial", "bj", now, "T01", "A", "B", "S01", nil, nil, "Planned", now, now, "r-1", "Bob", "good", "Book X", nil)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN textbooks tb ON tb.id = rp.material_id")).WillReturnRows(rows)

	records, err := repo.ListForExport(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Bob", *records[0].ActualStudentName)
	assert.Nil(t, records[0].MaterialName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM class_sessions s WHERE s.id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(sessionColumnNames))

	_, err := repo.FindByID(context.Background(), "missing")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
