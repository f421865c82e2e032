package models

import "time"

// ClassSession is a scheduled lesson keyed by the external identity from the
// schedule workbook.
type ClassSession struct {
	ID                  string    `db:"id" json:"id"`
	CourseName          string    `db:"course_name" json:"course_name"`
	BookingType         string    `db:"booking_type" json:"booking_type"`
	ClassTimeBJ         string    `db:"class_time_bj" json:"class_time_bj"`
	ClassTimeSaudi      time.Time `db:"class_time_saudi" json:"class_time_saudi"`
	TeacherID           string    `db:"teacher_id" json:"teacher_id"`
	TeacherName         string    `db:"teacher_name" json:"teacher_name"`
	OriginalStudentName string    `db:"original_student_name" json:"original_student_name"`
	StudentID           string    `db:"student_id" json:"student_id"`
	Talk51ID            *string   `db:"talk51_id" json:"talk51_id"`
	MeritHubID          *string   `db:"merithub_id" json:"merithub_id"`
	ExcelStatus         string    `db:"excel_status" json:"excel_status"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// SessionListItem is a session row joined with the id of its report, if any.
type SessionListItem struct {
	ClassSession
	ReportID *string `db:"report_id" json:"report_id,omitempty"`
}

// HasReport reports whether an evaluation was submitted for the session.
func (s SessionListItem) HasReport() bool {
	return s.ReportID != nil && *s.ReportID != ""
}

// SessionExportRecord flattens a session with its optional report and the
// name of the textbook the report links to.
type SessionExportRecord struct {
	ClassSession
	ReportID             *string `db:"report_id"`
	ActualStudentName    *string `db:"actual_student_name"`
	Feedback             *string `db:"feedback"`
	FallbackMaterialName *string `db:"fallback_material_name"`
	MaterialName         *string `db:"material_name"`
}

// SessionUpsertResult tells whether an upsert inserted a new row.
type SessionUpsertResult struct {
	Created bool
}
