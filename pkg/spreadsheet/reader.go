// Package spreadsheet decodes and encodes xlsx workbooks as ordered sheets of
// header-keyed rows. It carries no business knowledge.
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Row maps a header name to a typed cell value. Values are one of string,
// float64, bool or time.Time. Blank cells are absent.
type Row map[string]any

// Sheet is one worksheet with its header row and decoded data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row
}

// Workbook is the ordered list of sheets found in a payload.
type Workbook struct {
	Sheets []Sheet
}

// Sheet returns the sheet at position idx (zero based).
func (w *Workbook) Sheet(idx int) (*Sheet, bool) {
	if w == nil || idx < 0 || idx >= len(w.Sheets) {
		return nil, false
	}
	return &w.Sheets[idx], true
}

// Decode reads an xlsx payload. The first row of each sheet is the header
// row; fully blank data rows are dropped.
func Decode(data []byte) (*Workbook, error) {
	return Read(bytes.NewReader(data))
}

// Read is Decode over an io.Reader.
func Read(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		sheet, err := readSheet(f, name)
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

func readSheet(f *excelize.File, name string) (Sheet, error) {
	sheet := Sheet{Name: name}
	grid, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheet, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(grid) == 0 {
		return sheet, nil
	}

	sheet.Headers = headerNames(grid[0])
	for r := 1; r < len(grid); r++ {
		row := make(Row)
		for c, raw := range grid[r] {
			if c >= len(sheet.Headers) || sheet.Headers[c] == "" || raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return sheet, fmt.Errorf("cell name: %w", err)
			}
			cellType, err := f.GetCellType(name, cellName)
			if err != nil {
				return sheet, fmt.Errorf("cell type %s!%s: %w", name, cellName, err)
			}
			if v, ok := typedValue(cellType, raw); ok {
				row[sheet.Headers[c]] = v
			}
		}
		if len(row) > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet, nil
}

// headerNames trims header text and disambiguates repeats with a numeric
// suffix ("Name", "Name_1").
func headerNames(raw []string) []string {
	seen := make(map[string]int, len(raw))
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = fmt.Sprintf("%s_%d", h, n+1)
		} else {
			seen[h] = 0
		}
		headers[i] = h
	}
	return headers
}

func typedValue(cellType excelize.CellType, raw string) (any, bool) {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f, true
		}
		return raw, true
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), true
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
		return raw, true
	default:
		if strings.TrimSpace(raw) == "" {
			return nil, false
		}
		return raw, true
	}
}
