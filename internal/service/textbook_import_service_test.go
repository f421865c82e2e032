package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/workbook"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/spreadsheet"
)

func textbookSheet(idx int, rows ...[]any) spreadsheet.SheetData {
	l := workbook.Textbook[idx]
	return spreadsheet.SheetData{Name: l.SheetName, Headers: l.Headers(), Rows: rows}
}

func fullTextbookWorkbook(bookType string) []byte {
	return mustEncode(
		textbookSheet(workbook.SheetInfo, []any{"TB-1", "Phonics 1", bookType, ""}),
		textbookSheet(workbook.SheetQuestions,
			[]any{"", "Fluency"},
			[]any{"Q-B", "Pronunciation", "", "阶段选择"},
			[]any{"", "Grammar"},
			[]any{"Q-X", "", "", "单选"},
			[]any{"", "Vocabulary"},
			[]any{"", "Listening"},
			[]any{"", "Pick a stage", "", "阶段选择", "", "A", "B", "C"},
			[]any{"", "Pick a summary", "", "总评选择", "", "A", "B"},
			[]any{"", "Favourite fruit", "", "单选", "", "Apple", "Pear"},
		),
		textbookSheet(workbook.SheetModules,
			[]any{"Vocabulary", "المفردات", "Apple, Banana，Cherry\nDate", "", 2.0},
			[]any{"", "", "Hello"},
		),
		textbookSheet(workbook.SheetGrowthRules,
			[]any{"A", "Starter", "", "Good start", "", 3.0},
			[]any{"", "Orphan"},
			[]any{"B"},
		),
		textbookSheet(workbook.SheetCommentRules,
			[]any{"A", "Excellent", "Great job"},
			[]any{"", "No key"},
		),
	)
}

func TestTextbookImportParsesAllSheets(t *testing.T) {
	store := newFakeTextbookStore()
	core, logs := observer.New(zap.WarnLevel)
	svc := NewTextbookImportService(store, nil, nil, zap.New(core))

	summary, err := svc.Import(context.Background(), fullTextbookWorkbook("考试类"))
	require.NoError(t, err)
	assert.Equal(t, "TB-1", summary.BookID)
	assert.Equal(t, "Phonics 1", summary.Name)
	assert.True(t, summary.Created)
	assert.Equal(t, 8, summary.Questions)
	assert.Equal(t, 2, summary.Modules)
	assert.Equal(t, 2, summary.GrowthRules)
	assert.Equal(t, 1, summary.CommentRules)

	tb := store.byBookID["TB-1"]
	assert.Equal(t, models.TextbookTypeExam, tb.Type)
	assert.Nil(t, tb.CoverURL)

	q := tb.Questions
	for _, radar := range q[:5] {
		assert.Equal(t, models.QuestionTypeRadar, radar.QType, radar.Content)
	}
	assert.Equal(t, "Q-0", q[0].QuestionKey)
	assert.Equal(t, "Q-B", q[1].QuestionKey)
	assert.Equal(t, "Q-4", q[3].QuestionKey)
	assert.Equal(t, 5, q[3].SortOrder)
	assert.Equal(t, "Listening", q[4].Content)
	assert.Equal(t, 6, q[4].SortOrder)
	assert.Equal(t, models.QuestionTypeGrowthTrigger, q[5].QType)
	assert.Equal(t, models.QuestionOptions{A: "A", B: "B", C: "C"}, q[5].Options)
	assert.Equal(t, models.QuestionTypeCommentTrigger, q[6].QType)
	assert.Equal(t, models.QuestionTypeChoice, q[7].QType)
	assert.Equal(t, 9, q[7].SortOrder)

	m := tb.Modules
	assert.Equal(t, models.StringList{"Apple", "Banana", "Cherry", "Date"}, m[0].Content)
	assert.Equal(t, models.StringList{}, m[0].ContentAR)
	assert.Equal(t, 2, m[0].SortOrder)
	assert.Equal(t, workbook.DefaultModuleTitle, m[1].Title)
	assert.Equal(t, workbook.DefaultSortOrder, m[1].SortOrder)

	g := tb.GrowthRules
	assert.Equal(t, 3, g[0].Position)
	assert.Equal(t, workbook.DefaultStageName, g[1].StageName)
	assert.Equal(t, workbook.DefaultPosition, g[1].Position)

	assert.Equal(t, "Great job", tb.CommentRules[0].FullText)
	assert.Equal(t, 1, logs.FilterMessage("growth rule without option key skipped").Len())
}

func TestClassifyQuestion(t *testing.T) {
	cases := []struct {
		idx  int
		text string
		want models.QuestionType
	}{
		{0, "阶段选择", models.QuestionTypeRadar},
		{4, "总评", models.QuestionTypeRadar},
		{5, "阶段选择", models.QuestionTypeGrowthTrigger},
		{6, "总评选择", models.QuestionTypeCommentTrigger},
		{7, "阶段总评", models.QuestionTypeCommentTrigger},
		{8, "", models.QuestionTypeChoice},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyQuestion(tc.idx, tc.text), "%d %q", tc.idx, tc.text)
	}
}

func TestTextbookImportBlankPromptDoesNotConsumeRadarSlot(t *testing.T) {
	store := newFakeTextbookStore()
	svc := NewTextbookImportService(store, nil, nil, nil)

	data := mustEncode(
		textbookSheet(workbook.SheetInfo, []any{"TB-2", "Speaking 2", "口语类"}),
		textbookSheet(workbook.SheetQuestions,
			[]any{"", "D1"},
			[]any{"Q-X", ""},
			[]any{"", "D2"},
			[]any{"", "D3"},
			[]any{"", "D4"},
			[]any{"", "D5"},
			[]any{"", "Extra"},
		),
	)
	_, err := svc.Import(context.Background(), data)
	require.NoError(t, err)

	q := store.byBookID["TB-2"].Questions
	require.Len(t, q, 6)
	for _, radar := range q[:5] {
		assert.Equal(t, models.QuestionTypeRadar, radar.QType, radar.Content)
	}
	assert.Equal(t, "D5", q[4].Content)
	assert.Equal(t, 6, q[4].SortOrder)
	assert.Equal(t, models.QuestionTypeChoice, q[5].QType)
	assert.Equal(t, 7, q[5].SortOrder)
}

func TestTextbookImportReimportReplaces(t *testing.T) {
	store := newFakeTextbookStore()
	svc := NewTextbookImportService(store, nil, nil, nil)

	first, err := svc.Import(context.Background(), fullTextbookWorkbook("口语类"))
	require.NoError(t, err)

	smaller := mustEncode(
		textbookSheet(workbook.SheetInfo, []any{"TB-1", "Phonics 1 v2", "口语类"}),
		textbookSheet(workbook.SheetQuestions, []any{"", "Only question"}),
	)
	second, err := svc.Import(context.Background(), smaller)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ID, second.ID)

	tb := store.byBookID["TB-1"]
	assert.Equal(t, "Phonics 1 v2", tb.Name)
	assert.Equal(t, models.TextbookTypeSpeaking, tb.Type)
	assert.Len(t, tb.Questions, 1)
	assert.Empty(t, tb.Modules)
	assert.Empty(t, tb.GrowthRules)
	assert.Empty(t, tb.CommentRules)
}

func TestTextbookImportValidatesInfoBeforeStorage(t *testing.T) {
	store := newFakeTextbookStore()
	svc := NewTextbookImportService(store, nil, nil, nil)

	noRows := mustEncode(textbookSheet(workbook.SheetInfo))
	_, err := svc.Import(context.Background(), noRows)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	noName := mustEncode(textbookSheet(workbook.SheetInfo, []any{"TB-1", "", "口语类"}))
	_, err = svc.Import(context.Background(), noName)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Import(context.Background(), []byte{0x50, 0x4b})
	assert.ErrorIs(t, err, appErrors.ErrImportFailed)

	assert.Zero(t, store.replaces)
}

func TestTextbookImportStorageFailure(t *testing.T) {
	store := newFakeTextbookStore()
	store.replaceErr = errors.New("deadlock")
	svc := NewTextbookImportService(store, nil, nil, nil)

	_, err := svc.Import(context.Background(), fullTextbookWorkbook("口语类"))
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Empty(t, store.byBookID)
}
