package models

import (
	"database/sql/driver"
	"time"
)

// TextbookType classifies a textbook.
type TextbookType string

const (
	TextbookTypeExam     TextbookType = "EXAM"
	TextbookTypeSpeaking TextbookType = "SPEAKING"
)

// QuestionType tags how a question is rendered and scored.
type QuestionType string

const (
	QuestionTypeRadar          QuestionType = "RADAR"
	QuestionTypeChoice         QuestionType = "CHOICE"
	QuestionTypeGrowthTrigger  QuestionType = "Growth_Trigger"
	QuestionTypeCommentTrigger QuestionType = "Comment_Trigger"
)

// RadarDimensions is the number of leading questions that are always
// scored dimensions.
const RadarDimensions = 5

// Textbook is a material package. It owns its four child collections.
type Textbook struct {
	ID           string            `db:"id" json:"id"`
	BookID       string            `db:"book_id" json:"book_id"`
	Name         string            `db:"name" json:"name"`
	Type         TextbookType      `db:"type" json:"type"`
	CoverURL     *string           `db:"cover_url" json:"cover_url,omitempty"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
	Questions    []Question        `db:"-" json:"questions,omitempty"`
	Modules      []KnowledgeModule `db:"-" json:"modules,omitempty"`
	GrowthRules  []GrowthRule      `db:"-" json:"growth_rules,omitempty"`
	CommentRules []CommentRule     `db:"-" json:"comment_rules,omitempty"`
}

// TextbookSummary is a list projection with child counts.
type TextbookSummary struct {
	ID            string       `db:"id" json:"id"`
	BookID        string       `db:"book_id" json:"book_id"`
	Name          string       `db:"name" json:"name"`
	Type          TextbookType `db:"type" json:"type"`
	CoverURL      *string      `db:"cover_url" json:"cover_url,omitempty"`
	QuestionCount int          `db:"question_count" json:"question_count"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

// QuestionOptions packs the four lettered choices of a question.
type QuestionOptions struct {
	A string `json:"A,omitempty"`
	B string `json:"B,omitempty"`
	C string `json:"C,omitempty"`
	D string `json:"D,omitempty"`
}

// Value encodes the options as JSON text.
func (o QuestionOptions) Value() (driver.Value, error) {
	return jsonValue("question options", o)
}

// Scan decodes JSON text; malformed input yields empty options.
func (o *QuestionOptions) Scan(value interface{}) error {
	data, err := jsonBytes("question options", value)
	if err != nil {
		return err
	}
	var decoded QuestionOptions
	if !decodeJSONText("question options", data, &decoded) {
		decoded = QuestionOptions{}
	}
	*o = decoded
	return nil
}

// IsEmpty reports whether no option is set.
func (o QuestionOptions) IsEmpty() bool {
	return o == QuestionOptions{}
}

// StringList is an ordered list of short strings stored as a JSON array.
type StringList []string

// Value encodes the list as JSON text. A nil list is stored as [].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return jsonValue("string list", []string(l))
}

// Scan decodes JSON text; malformed input yields an empty list.
func (l *StringList) Scan(value interface{}) error {
	data, err := jsonBytes("string list", value)
	if err != nil {
		return err
	}
	decoded := StringList{}
	if !decodeJSONText("string list", data, &decoded) || decoded == nil {
		decoded = StringList{}
	}
	*l = decoded
	return nil
}

// Question is one evaluation prompt of a textbook.
type Question struct {
	ID          string          `db:"id" json:"id"`
	TextbookID  string          `db:"textbook_id" json:"textbook_id"`
	QuestionKey string          `db:"question_key" json:"question_key"`
	Content     string          `db:"content" json:"content"`
	ContentAR   *string         `db:"content_ar" json:"content_ar,omitempty"`
	QType       QuestionType    `db:"q_type" json:"q_type"`
	Tag         *string         `db:"tag" json:"tag,omitempty"`
	Options     QuestionOptions `db:"options" json:"options"`
	SortOrder   int             `db:"sort_order" json:"sort_order"`
}

// KnowledgeModule is a "what we learned today" block.
type KnowledgeModule struct {
	ID         string     `db:"id" json:"id"`
	TextbookID string     `db:"textbook_id" json:"textbook_id"`
	Title      string     `db:"title" json:"title"`
	TitleAR    *string    `db:"title_ar" json:"title_ar,omitempty"`
	Content    StringList `db:"content" json:"content"`
	ContentAR  StringList `db:"content_ar" json:"content_ar"`
	SortOrder  int        `db:"sort_order" json:"sort_order"`
}

// GrowthRule maps a chosen answer option to a growth stage.
type GrowthRule struct {
	ID            string  `db:"id" json:"id"`
	TextbookID    string  `db:"textbook_id" json:"textbook_id"`
	TriggerKey    string  `db:"trigger_key" json:"trigger_key"`
	StageName     string  `db:"stage_name" json:"stage_name"`
	StageNameAR   *string `db:"stage_name_ar" json:"stage_name_ar,omitempty"`
	DisplayText   string  `db:"display_text" json:"display_text"`
	DisplayTextAR *string `db:"display_text_ar" json:"display_text_ar,omitempty"`
	Position      int     `db:"position" json:"position"`
}

// CommentRule maps a chosen answer option to a report comment.
type CommentRule struct {
	ID         string  `db:"id" json:"id"`
	TextbookID string  `db:"textbook_id" json:"textbook_id"`
	TriggerKey string  `db:"trigger_key" json:"trigger_key"`
	Summary    string  `db:"summary" json:"summary"`
	FullText   string  `db:"full_text" json:"full_text"`
	FullTextAR *string `db:"full_text_ar" json:"full_text_ar,omitempty"`
}
