// Package workbook holds the header contracts of the schedule and textbook
// workbooks and the typed row extraction built on them. Templates and
// importers both read from these tables, so a header rename happens here
// and nowhere else.
package workbook

// Column binds a canonical header to the ordered aliases a reader accepts.
// Header is always the first alias.
type Column struct {
	Key     string
	Header  string
	Aliases []string
}

func column(key string, aliases ...string) Column {
	return Column{Key: key, Header: aliases[0], Aliases: aliases}
}

// Layout is an ordered header row plus a sample data row used by templates.
type Layout struct {
	SheetName string
	Columns   []Column
	Samples   [][]string
}

// Headers returns the canonical header row.
func (l Layout) Headers() []string {
	headers := make([]string, len(l.Columns))
	for i, c := range l.Columns {
		headers[i] = c.Header
	}
	return headers
}

// Column returns the column bound to key.
func (l Layout) Column(key string) (Column, bool) {
	for _, c := range l.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Schedule column keys.
const (
	ColSessionID      = "session_id"
	ColCourseName     = "course_name"
	ColClassTimeBJ    = "class_time_bj"
	ColClassTimeSaudi = "class_time_saudi"
	ColBookingType    = "booking_type"
	ColTeacherName    = "teacher_name"
	ColTeacherID      = "teacher_id"
	ColStudentName    = "student_name"
	ColStudentID      = "student_id"
	ColTalk51ID       = "talk51_id"
	ColMeritHubID     = "merithub_id"
	ColStatus         = "status"
)

// Schedule is the single-sheet class schedule workbook. The Saudi class time
// falls back to the Beijing column when absent.
var Schedule = Layout{
	SheetName: "排课表模板",
	Columns: []Column{
		column(ColSessionID, "主键ID", "id", "ID"),
		column(ColCourseName, "课程名称"),
		column(ColClassTimeBJ, "上课时间(北京)"),
		column(ColClassTimeSaudi, "上课时间(沙特)", "上课时间(北京)"),
		column(ColBookingType, "预约类型"),
		column(ColTeacherName, "老师姓名"),
		column(ColTeacherID, "老师ID"),
		column(ColStudentName, "学生姓名"),
		column(ColStudentID, "学生ID"),
		column(ColTalk51ID, "51talkID"),
		column(ColMeritHubID, "MeritHubID"),
		column(ColStatus, "课程状态"),
	},
	Samples: [][]string{
		{"S-001", "Demo L1", "2024-01-01", "2024-01-01", "Trial", "Teacher A", "T01", "Student B", "S01", "123", "MH1", "Planned"},
	},
}

// Textbook column keys.
const (
	ColBookID       = "book_id"
	ColBookName     = "book_name"
	ColBookType     = "book_type"
	ColCoverURL     = "cover_url"
	ColQuestionKey  = "question_key"
	ColQuestionText = "question_text"
	ColQuestionAR   = "question_text_ar"
	ColQuestionType = "question_type"
	ColQuestionTag  = "question_tag"
	ColOptionA      = "option_a"
	ColOptionB      = "option_b"
	ColOptionC      = "option_c"
	ColOptionD      = "option_d"
	ColModuleTitle  = "module_title"
	ColModuleTitleA = "module_title_ar"
	ColModuleBody   = "module_content"
	ColModuleBodyA  = "module_content_ar"
	ColModuleSort   = "module_sort"
	ColTriggerKey   = "trigger_key"
	ColStageName    = "stage_name"
	ColStageNameAR  = "stage_name_ar"
	ColDisplayText  = "display_text"
	ColDisplayAR    = "display_text_ar"
	ColPosition     = "position"
	ColSummary      = "summary"
	ColFullText     = "full_text"
	ColFullTextAR   = "full_text_ar"
)

// ExamTypeLabel marks an exam textbook in the info sheet; any other value
// means speaking.
const ExamTypeLabel = "考试类"

// Keywords in the question type column that select trigger questions.
const (
	StageKeyword   = "阶段"
	SummaryKeyword = "总评"
)

// Textbook sheets are matched by position, so the order of this slice is
// part of the contract.
var Textbook = []Layout{
	{
		SheetName: "基础信息",
		Columns: []Column{
			column(ColBookID, "Book_ID"),
			column(ColBookName, "教材名称"),
			column(ColBookType, "教材类型"),
			column(ColCoverURL, "封面图"),
		},
		Samples: [][]string{{"TB-DEMO-01", "示例教材 (L1)", "口语类", "https://example.com/cover.jpg"}},
	},
	{
		SheetName: "题目配置",
		Columns: []Column{
			column(ColQuestionKey, "题目ID"),
			column(ColQuestionText, "题目内容"),
			column(ColQuestionAR, "题目内容_AR"),
			column(ColQuestionType, "题目类型"),
			column(ColQuestionTag, "关联维度"),
			column(ColOptionA, "选项A"),
			column(ColOptionB, "选项B"),
			column(ColOptionC, "选项C"),
			column(ColOptionD, "选项D"),
		},
		Samples: [][]string{
			{"Q-01", "Pronunciation", "النطق", "打分题", "Pronunciation", "1", "2", "3", "4"},
			{"STAGE", "Select Stage", "اختر المرحلة", "阶段选择", "-", "A", "B", "C", "-"},
			{"COMMENT", "Select Comment", "اختر التعليق", "总评选择", "-", "A", "B", "C", "-"},
		},
	},
	{
		SheetName: "今日所学",
		Columns: []Column{
			column(ColModuleTitle, "模块标题"),
			column(ColModuleTitleA, "模块标题_AR"),
			column(ColModuleBody, "模块内容"),
			column(ColModuleBodyA, "模块内容_AR"),
			column(ColModuleSort, "排序"),
		},
		Samples: [][]string{{"Vocabulary", "المفردات", "Apple, Banana", "تفاحة, موز", "1"}},
	},
	{
		SheetName: "成长规则",
		Columns: []Column{
			column(ColTriggerKey, "选项Key"),
			column(ColStageName, "阶段名称"),
			column(ColStageNameAR, "阶段名称_AR"),
			column(ColDisplayText, "报告展示文案"),
			column(ColDisplayAR, "报告展示文案_AR"),
			column(ColPosition, "坐标点"),
		},
		Samples: [][]string{{"A", "Starter", "مبتدئ", "Good start...", "بداية جيدة...", "1"}},
	},
	{
		SheetName: "评语规则",
		Columns: []Column{
			column(ColTriggerKey, "选项Key"),
			column(ColSummary, "评语摘要"),
			column(ColFullText, "报告展示完整评语"),
			column(ColFullTextAR, "报告展示完整评语_AR"),
		},
		Samples: [][]string{{"A", "Excellent", "Great job...", "عمل رائع..."}},
	},
}

// Positions of the textbook sheets.
const (
	SheetInfo = iota
	SheetQuestions
	SheetModules
	SheetGrowthRules
	SheetCommentRules
)
