package service

import (
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/workbook"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/spreadsheet"
)

// Template download names.
const (
	ScheduleTemplateFilename = "schedule_template_v1.xlsx"
	TextbookTemplateFilename = "textbook_template_bilingual_v1.xlsx"
)

// TemplateFile is a generated blank workbook.
type TemplateFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// TemplateService builds blank workbooks from the same header tables the
// importers read.
type TemplateService struct{}

// NewTemplateService constructs a TemplateService.
func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

// ScheduleTemplate returns the single sheet schedule workbook.
func (s *TemplateService) ScheduleTemplate() (*TemplateFile, error) {
	return buildTemplate(ScheduleTemplateFilename, workbook.Schedule)
}

// TextbookTemplate returns the five sheet textbook workbook.
func (s *TemplateService) TextbookTemplate() (*TemplateFile, error) {
	return buildTemplate(TextbookTemplateFilename, workbook.Textbook...)
}

func buildTemplate(filename string, layouts ...workbook.Layout) (*TemplateFile, error) {
	sheets := make([]spreadsheet.SheetData, 0, len(layouts))
	for _, l := range layouts {
		rows := make([][]any, 0, len(l.Samples))
		for _, sample := range l.Samples {
			row := make([]any, len(sample))
			for i, v := range sample {
				row[i] = v
			}
			rows = append(rows, row)
		}
		sheets = append(sheets, spreadsheet.SheetData{Name: l.SheetName, Headers: l.Headers(), Rows: rows})
	}
	data, err := spreadsheet.Encode(sheets...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build template")
	}
	return &TemplateFile{Filename: filename, ContentType: spreadsheet.ContentType, Data: data}, nil
}
