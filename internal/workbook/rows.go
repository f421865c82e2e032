package workbook

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/spreadsheet"
)

// Defaults applied when optional textbook cells are blank.
const (
	DefaultModuleTitle = "Untitled Module"
	DefaultStageName   = "Unknown Stage"
	DefaultSortOrder   = 1
	DefaultPosition    = 1
)

// Value returns the cell of the first alias of key that holds a non-blank
// value.
func (l Layout) Value(row spreadsheet.Row, key string) (any, bool) {
	col, ok := l.Column(key)
	if !ok {
		return nil, false
	}
	for _, alias := range col.Aliases {
		v, present := row[alias]
		if !present || v == nil {
			continue
		}
		if s, isText := v.(string); isText && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// Text coerces the cell for key to trimmed text, "" when absent.
func (l Layout) Text(row spreadsheet.Row, key string) string {
	v, ok := l.Value(row, key)
	if !ok {
		return ""
	}
	return Text(v)
}

// OptionalText is Text that distinguishes absent (nil) from present.
func (l Layout) OptionalText(row spreadsheet.Row, key string) *string {
	s := l.Text(row, key)
	if s == "" {
		return nil
	}
	return &s
}

// Int reads a positive or negative whole number, using def when the cell is
// blank, zero or not numeric.
func (l Layout) Int(row spreadsheet.Row, key string, def int) int {
	v, ok := l.Value(row, key)
	if !ok {
		return def
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case bool:
		if n {
			f = 1
		}
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(Text(v)), 64)
		if err != nil {
			return def
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 || math.Abs(f) > math.MaxInt32 {
		return def
	}
	return int(f)
}

// Text renders a decoded cell as text. Whole numbers print without a
// fraction so numeric ids keep their shape.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return ""
	}
}

// SplitItems breaks free text into items on newlines and ASCII or
// full-width commas, dropping blanks.
func SplitItems(s string) models.StringList {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == ',' || r == '，'
	})
	items := make(models.StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// ScheduleRow is one decoded schedule line. ClassTime carries the raw cell
// for date normalization.
type ScheduleRow struct {
	SessionID   string
	CourseName  string
	ClassTimeBJ string
	ClassTime   any
	BookingType string
	TeacherName string
	TeacherID   string
	StudentName string
	StudentID   string
	Talk51ID    *string
	MeritHubID  *string
	Status      string
}

// ParseScheduleRow extracts a schedule row. It reports false when the row
// has no identity key and should be skipped.
func ParseScheduleRow(row spreadsheet.Row) (ScheduleRow, bool) {
	l := Schedule
	id := l.Text(row, ColSessionID)
	if id == "" {
		return ScheduleRow{}, false
	}
	classTime, _ := l.Value(row, ColClassTimeSaudi)
	return ScheduleRow{
		SessionID:   id,
		CourseName:  l.Text(row, ColCourseName),
		ClassTimeBJ: l.Text(row, ColClassTimeBJ),
		ClassTime:   classTime,
		BookingType: l.Text(row, ColBookingType),
		TeacherName: l.Text(row, ColTeacherName),
		TeacherID:   l.Text(row, ColTeacherID),
		StudentName: l.Text(row, ColStudentName),
		StudentID:   l.Text(row, ColStudentID),
		Talk51ID:    l.OptionalText(row, ColTalk51ID),
		MeritHubID:  l.OptionalText(row, ColMeritHubID),
		Status:      l.Text(row, ColStatus),
	}, true
}

// TextbookInfo is the single data row of the info sheet.
type TextbookInfo struct {
	BookID   string `validate:"required"`
	Name     string `validate:"required"`
	Type     models.TextbookType
	CoverURL *string
}

// ParseTextbookInfo extracts the info row. Required fields are checked by
// the caller.
func ParseTextbookInfo(row spreadsheet.Row) TextbookInfo {
	l := Textbook[SheetInfo]
	kind := models.TextbookTypeSpeaking
	if l.Text(row, ColBookType) == ExamTypeLabel {
		kind = models.TextbookTypeExam
	}
	return TextbookInfo{
		BookID:   l.Text(row, ColBookID),
		Name:     l.Text(row, ColBookName),
		Type:     kind,
		CoverURL: l.OptionalText(row, ColCoverURL),
	}
}

// QuestionRow is one decoded question line.
type QuestionRow struct {
	Key       string
	Content   string
	ContentAR *string
	TypeText  string
	Tag       *string
	Options   models.QuestionOptions
}

// ParseQuestionRow reports false for rows without prompt text.
func ParseQuestionRow(row spreadsheet.Row) (QuestionRow, bool) {
	l := Textbook[SheetQuestions]
	content := l.Text(row, ColQuestionText)
	if content == "" {
		return QuestionRow{}, false
	}
	return QuestionRow{
		Key:       l.Text(row, ColQuestionKey),
		Content:   content,
		ContentAR: l.OptionalText(row, ColQuestionAR),
		TypeText:  l.Text(row, ColQuestionType),
		Tag:       l.OptionalText(row, ColQuestionTag),
		Options: models.QuestionOptions{
			A: l.Text(row, ColOptionA),
			B: l.Text(row, ColOptionB),
			C: l.Text(row, ColOptionC),
			D: l.Text(row, ColOptionD),
		},
	}, true
}

// ModuleRow is one decoded knowledge module line.
type ModuleRow struct {
	Title     string
	TitleAR   *string
	Content   models.StringList
	ContentAR models.StringList
	SortOrder int
}

// ParseModuleRow reports false when both title and content are blank.
func ParseModuleRow(row spreadsheet.Row) (ModuleRow, bool) {
	l := Textbook[SheetModules]
	title := l.Text(row, ColModuleTitle)
	content := l.Text(row, ColModuleBody)
	if title == "" && content == "" {
		return ModuleRow{}, false
	}
	if title == "" {
		title = DefaultModuleTitle
	}
	return ModuleRow{
		Title:     title,
		TitleAR:   l.OptionalText(row, ColModuleTitleA),
		Content:   SplitItems(content),
		ContentAR: SplitItems(l.Text(row, ColModuleBodyA)),
		SortOrder: l.Int(row, ColModuleSort, DefaultSortOrder),
	}, true
}

// GrowthRow is one decoded growth rule line.
type GrowthRow struct {
	TriggerKey    string
	StageName     string
	StageNameAR   *string
	DisplayText   string
	DisplayTextAR *string
	Position      int
}

// ParseGrowthRow reports false when the trigger key is blank.
func ParseGrowthRow(row spreadsheet.Row) (GrowthRow, bool) {
	l := Textbook[SheetGrowthRules]
	key := l.Text(row, ColTriggerKey)
	if key == "" {
		return GrowthRow{}, false
	}
	stage := l.Text(row, ColStageName)
	if stage == "" {
		stage = DefaultStageName
	}
	return GrowthRow{
		TriggerKey:    key,
		StageName:     stage,
		StageNameAR:   l.OptionalText(row, ColStageNameAR),
		DisplayText:   l.Text(row, ColDisplayText),
		DisplayTextAR: l.OptionalText(row, ColDisplayAR),
		Position:      l.Int(row, ColPosition, DefaultPosition),
	}, true
}

// CommentRow is one decoded comment rule line.
type CommentRow struct {
	TriggerKey string
	Summary    string
	FullText   string
	FullTextAR *string
}

// ParseCommentRow reports false when the trigger key is blank.
func ParseCommentRow(row spreadsheet.Row) (CommentRow, bool) {
	l := Textbook[SheetCommentRules]
	key := l.Text(row, ColTriggerKey)
	if key == "" {
		return CommentRow{}, false
	}
	return CommentRow{
		TriggerKey: key,
		Summary:    l.Text(row, ColSummary),
		FullText:   l.Text(row, ColFullText),
		FullTextAR: l.OptionalText(row, ColFullTextAR),
	}, true
}
