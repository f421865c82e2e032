package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an xlsx payload.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetData describes one worksheet to encode.
type SheetData struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Encode builds an xlsx workbook with the given sheets in order. The header
// row is bold and the first sheet is active.
func Encode(sheets ...SheetData) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("encode workbook: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, bold); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet SheetData, headerStyle int) error {
	if len(sheet.Headers) > 0 {
		header := make([]any, len(sheet.Headers))
		for i, h := range sheet.Headers {
			header[i] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("write header %q: %w", sheet.Name, err)
		}
		last, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
		if err != nil {
			return fmt.Errorf("header range: %w", err)
		}
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style header %q: %w", sheet.Name, err)
		}
		lastCol, _, err := excelize.SplitCellName(last)
		if err != nil {
			return fmt.Errorf("header range: %w", err)
		}
		if err := f.SetColWidth(sheet.Name, "A", lastCol, 18); err != nil {
			return fmt.Errorf("column width %q: %w", sheet.Name, err)
		}
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		values := row
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %q: %w", i+2, sheet.Name, err)
		}
	}
	return nil
}
