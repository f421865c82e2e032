package models

import (
	"database/sql/driver"
	"time"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Scores maps a skill dimension to a 1..5 score.
type Scores map[string]int

// Value encodes scores as JSON text. A nil map is stored as {}.
func (s Scores) Value() (driver.Value, error) {
	if s == nil {
		s = Scores{}
	}
	return jsonValue("scores", map[string]int(s))
}

// Scan decodes JSON text; malformed input yields an empty map.
func (s *Scores) Scan(value interface{}) error {
	data, err := jsonBytes("scores", value)
	if err != nil {
		return err
	}
	decoded := Scores{}
	if !decodeJSONText("scores", data, &decoded) {
		decoded = Scores{}
	}
	*s = decoded
	return nil
}

// Report is a teacher's evaluation of exactly one session.
type Report struct {
	ID                   string    `db:"id" json:"id"`
	SessionID            string    `db:"session_id" json:"session_id"`
	ActualStudentName    string    `db:"actual_student_name" json:"actual_student_name"`
	Scores               Scores    `db:"scores" json:"scores"`
	Feedback             string    `db:"feedback" json:"feedback"`
	MaterialID           *string   `db:"material_id" json:"material_id,omitempty"`
	FallbackMaterialName *string   `db:"fallback_material_name" json:"fallback_material_name,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// ReportDetail is a report joined with its session and linked textbook.
type ReportDetail struct {
	Report
	CourseName     string    `db:"course_name" json:"course_name"`
	TeacherName    string    `db:"teacher_name" json:"teacher_name"`
	ClassTimeSaudi time.Time `db:"class_time_saudi" json:"class_time_saudi"`
	ClassTimeBJ    string    `db:"class_time_bj" json:"class_time_bj"`
	MaterialName   *string   `db:"material_name" json:"material_name,omitempty"`
	BookID         *string   `db:"book_id" json:"book_id,omitempty"`
}
