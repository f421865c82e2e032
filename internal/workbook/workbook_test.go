package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/spreadsheet"
)

func TestLayoutsAreConsistent(t *testing.T) {
	layouts := append([]Layout{Schedule}, Textbook...)
	for _, l := range layouts {
		seen := map[string]bool{}
		for _, c := range l.Columns {
			require.NotEmpty(t, c.Aliases, l.SheetName)
			assert.Equal(t, c.Header, c.Aliases[0], "%s/%s", l.SheetName, c.Key)
			assert.False(t, seen[c.Header], "duplicate header %s", c.Header)
			seen[c.Header] = true
		}
		for _, sample := range l.Samples {
			assert.Len(t, sample, len(l.Columns), l.SheetName)
		}
	}
	assert.Equal(t, []string{
		"主键ID", "课程名称", "上课时间(北京)", "上课时间(沙特)", "预约类型", "老师姓名",
		"老师ID", "学生姓名", "学生ID", "51talkID", "MeritHubID", "课程状态",
	}, Schedule.Headers())
	assert.Len(t, Textbook, 5)
}

func TestParseScheduleRowAliases(t *testing.T) {
	row := spreadsheet.Row{
		"ID":       "  S-9 ",
		"课程名称":     "Demo",
		"上课时间(北京)": 45292.5,
		"老师ID":     float64(1024),
		"51talkID": "",
	}
	got, ok := ParseScheduleRow(row)
	require.True(t, ok)
	assert.Equal(t, "S-9", got.SessionID)
	assert.Equal(t, "Demo", got.CourseName)
	assert.Equal(t, "45292.5", got.ClassTimeBJ)
	assert.Equal(t, 45292.5, got.ClassTime, "falls back to the Beijing column")
	assert.Equal(t, "1024", got.TeacherID)
	assert.Equal(t, "", got.BookingType)
	assert.Nil(t, got.Talk51ID)
	assert.Nil(t, got.MeritHubID)
}

func TestParseScheduleRowPrefersSaudiTimeAndFirstIdentityAlias(t *testing.T) {
	row := spreadsheet.Row{
		"主键ID":     "A",
		"id":       "B",
		"上课时间(沙特)": "2026-01-07 / 02:30 ~ 03:00",
		"上课时间(北京)": "2026-01-07 07:30",
		"MeritHubID": "MH1",
	}
	got, ok := ParseScheduleRow(row)
	require.True(t, ok)
	assert.Equal(t, "A", got.SessionID)
	assert.Equal(t, "2026-01-07 / 02:30 ~ 03:00", got.ClassTime)
	require.NotNil(t, got.MeritHubID)
	assert.Equal(t, "MH1", *got.MeritHubID)
}

func TestParseScheduleRowSkipsMissingIdentity(t *testing.T) {
	_, ok := ParseScheduleRow(spreadsheet.Row{"课程名称": "Demo", "主键ID": "  "})
	assert.False(t, ok)
}

func TestParseTextbookInfo(t *testing.T) {
	info := ParseTextbookInfo(spreadsheet.Row{"Book_ID": "TB-1", "教材名称": "Book", "教材类型": "考试类"})
	assert.Equal(t, models.TextbookTypeExam, info.Type)
	assert.Nil(t, info.CoverURL)

	info = ParseTextbookInfo(spreadsheet.Row{"Book_ID": "TB-1", "教材类型": "口语类", "封面图": "http://x"})
	assert.Equal(t, models.TextbookTypeSpeaking, info.Type)
	assert.Equal(t, "", info.Name)
	require.NotNil(t, info.CoverURL)
}

func TestParseQuestionRow(t *testing.T) {
	_, ok := ParseQuestionRow(spreadsheet.Row{"题目ID": "Q-1"})
	assert.False(t, ok)

	q, ok := ParseQuestionRow(spreadsheet.Row{"题目内容": "Fluency", "选项A": "1", "选项D": float64(4)})
	require.True(t, ok)
	assert.Equal(t, models.QuestionOptions{A: "1", D: "4"}, q.Options)
	assert.Equal(t, "", q.Key)
}

func TestParseModuleRow(t *testing.T) {
	_, ok := ParseModuleRow(spreadsheet.Row{"排序": float64(3)})
	assert.False(t, ok)

	m, ok := ParseModuleRow(spreadsheet.Row{"模块内容": "Apple, Banana\nCherry，Date,,", "排序": "abc"})
	require.True(t, ok)
	assert.Equal(t, DefaultModuleTitle, m.Title)
	assert.Equal(t, models.StringList{"Apple", "Banana", "Cherry", "Date"}, m.Content)
	assert.Equal(t, models.StringList{}, m.ContentAR)
	assert.Equal(t, DefaultSortOrder, m.SortOrder)

	m, _ = ParseModuleRow(spreadsheet.Row{"模块标题": "Vocab", "排序": float64(4)})
	assert.Equal(t, 4, m.SortOrder)
}

func TestParseGrowthAndCommentRows(t *testing.T) {
	_, ok := ParseGrowthRow(spreadsheet.Row{"阶段名称": "Starter"})
	assert.False(t, ok)

	g, ok := ParseGrowthRow(spreadsheet.Row{"选项Key": float64(1), "坐标点": "0"})
	require.True(t, ok)
	assert.Equal(t, "1", g.TriggerKey)
	assert.Equal(t, DefaultStageName, g.StageName)
	assert.Equal(t, DefaultPosition, g.Position)

	_, ok = ParseCommentRow(spreadsheet.Row{"评语摘要": "x"})
	assert.False(t, ok)
	c, ok := ParseCommentRow(spreadsheet.Row{"选项Key": "A", "评语摘要": "Great"})
	require.True(t, ok)
	assert.Equal(t, "Great", c.Summary)
	assert.Nil(t, c.FullTextAR)
}

func TestText(t *testing.T) {
	assert.Equal(t, "12", Text(float64(12)))
	assert.Equal(t, "0.5", Text(0.5))
	assert.Equal(t, "true", Text(true))
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "", Text(struct{}{}))
}
