package dto

// Export column titles in output order.
const (
	ExportColSessionID    = "Session ID"
	ExportColCourseName   = "Course Name (Planned)"
	ExportColStatus       = "Status"
	ExportColBookingType  = "Booking Type"
	ExportColClassSaudi   = "Class Time (Saudi)"
	ExportColClassBJ      = "Class Time (Beijing)"
	ExportColTeacherName  = "Teacher Name"
	ExportColStudentOrig  = "Student (Original)"
	ExportColStudentActl  = "Student (Actual)"
	ExportColMaterial     = "Actual Material"
	ExportColReportLink   = "Report Link"
	ExportColFeedback     = "Teacher Feedback"
	ExportStatusCompleted = "Completed"
	ExportStatusPending   = "Pending"
	ExportMaterialMissing = "N/A"
)

// ExportHeaders lists the export columns in order.
var ExportHeaders = []string{
	ExportColSessionID, ExportColCourseName, ExportColStatus, ExportColBookingType,
	ExportColClassSaudi, ExportColClassBJ, ExportColTeacherName, ExportColStudentOrig,
	ExportColStudentActl, ExportColMaterial, ExportColReportLink, ExportColFeedback,
}

// ExportRow is one flattened session line of the admin export.
type ExportRow struct {
	SessionID       string `json:"Session ID"`
	CourseName      string `json:"Course Name (Planned)"`
	Status          string `json:"Status"`
	BookingType     string `json:"Booking Type"`
	ClassTimeSaudi  string `json:"Class Time (Saudi)"`
	ClassTimeBJ     string `json:"Class Time (Beijing)"`
	TeacherName     string `json:"Teacher Name"`
	StudentOriginal string `json:"Student (Original)"`
	StudentActual   string `json:"Student (Actual)"`
	Material        string `json:"Actual Material"`
	ReportLink      string `json:"Report Link"`
	Feedback        string `json:"Teacher Feedback"`
}

// Values returns the cells in ExportHeaders order.
func (r ExportRow) Values() []string {
	return []string{
		r.SessionID, r.CourseName, r.Status, r.BookingType,
		r.ClassTimeSaudi, r.ClassTimeBJ, r.TeacherName, r.StudentOriginal,
		r.StudentActual, r.Material, r.ReportLink, r.Feedback,
	}
}
