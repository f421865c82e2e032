package export

import (
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/spreadsheet"
)

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct {
	SheetName string
}

// NewXLSXExporter builds an xlsx exporter writing to a sheet named "Sessions".
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{SheetName: "Sessions"}
}

// ContentType implements Exporter.
func (e *XLSXExporter) ContentType() string { return spreadsheet.ContentType }

// Extension implements Exporter.
func (e *XLSXExporter) Extension() string { return "xlsx" }

// Render writes every value as a text cell so identifiers keep their format.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("xlsx"); err != nil {
		return nil, err
	}
	rows := make([][]any, len(data.Rows))
	for i, row := range data.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		rows[i] = cells
	}
	name := e.SheetName
	if name == "" {
		name = "Sheet1"
	}
	return spreadsheet.Encode(spreadsheet.SheetData{Name: name, Headers: data.Headers, Rows: rows})
}
