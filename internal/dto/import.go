package dto

// ActionResult is the outcome envelope of an admin workbook action. Failures
// are reported as data with Success false.
type ActionResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// TextbookImportData is returned after a textbook workbook import.
type TextbookImportData struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	BookID string `json:"bookId"`
}
