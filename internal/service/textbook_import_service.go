package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/workbook"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/spreadsheet"
)

type textbookWriter interface {
	Replace(ctx context.Context, tb *models.Textbook) (bool, error)
}

// TextbookImportSummary reports the stored textbook and its child counts.
type TextbookImportSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BookID       string `json:"bookId"`
	Created      bool   `json:"created"`
	Questions    int    `json:"questions"`
	Modules      int    `json:"modules"`
	GrowthRules  int    `json:"growthRules"`
	CommentRules int    `json:"commentRules"`
}

// TextbookImportService turns a five sheet textbook workbook into a
// textbook with its questions, modules and rules.
type TextbookImportService struct {
	textbooks textbookWriter
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewTextbookImportService constructs the textbook pipeline.
func NewTextbookImportService(textbooks textbookWriter, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *TextbookImportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextbookImportService{textbooks: textbooks, validator: validate, metrics: metrics, logger: logger}
}

// Import parses every sheet before touching storage, then replaces the
// textbook keyed by its book id in one transaction.
func (s *TextbookImportService) Import(ctx context.Context, data []byte) (summary *TextbookImportSummary, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveImport(PipelineTextbook, time.Since(start), err) }()

	wb, err := spreadsheet.Decode(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrImportFailed.Code, appErrors.ErrImportFailed.Status, "failed to read textbook workbook")
	}

	info, err := s.parseInfo(wb)
	if err != nil {
		return nil, err
	}

	tb := &models.Textbook{
		BookID:   info.BookID,
		Name:     info.Name,
		Type:     info.Type,
		CoverURL: info.CoverURL,
	}
	tb.Questions = parseQuestions(sheetRows(wb, workbook.SheetQuestions))
	tb.Modules = parseModules(sheetRows(wb, workbook.SheetModules))
	tb.GrowthRules = s.parseGrowthRules(sheetRows(wb, workbook.SheetGrowthRules))
	tb.CommentRules = parseCommentRules(sheetRows(wb, workbook.SheetCommentRules))

	created, err := s.textbooks.Replace(ctx, tb)
	if err != nil {
		s.logger.Error("textbook replace failed", zap.String("book_id", tb.BookID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save textbook")
	}

	outcome := OutcomeUpdated
	if created {
		outcome = OutcomeCreated
	}
	s.metrics.AddImportRows(PipelineTextbook, outcome, 1)

	s.logger.Info("textbook imported",
		zap.String("book_id", tb.BookID),
		zap.Bool("created", created),
		zap.Int("questions", len(tb.Questions)),
		zap.Int("modules", len(tb.Modules)),
		zap.Int("growth_rules", len(tb.GrowthRules)),
		zap.Int("comment_rules", len(tb.CommentRules)),
	)

	return &TextbookImportSummary{
		ID:           tb.ID,
		Name:         tb.Name,
		BookID:       tb.BookID,
		Created:      created,
		Questions:    len(tb.Questions),
		Modules:      len(tb.Modules),
		GrowthRules:  len(tb.GrowthRules),
		CommentRules: len(tb.CommentRules),
	}, nil
}

func (s *TextbookImportService) parseInfo(wb *spreadsheet.Workbook) (workbook.TextbookInfo, error) {
	rows := sheetRows(wb, workbook.SheetInfo)
	if len(rows) == 0 {
		return workbook.TextbookInfo{}, appErrors.Clone(appErrors.ErrValidation, "Basic Info sheet is empty")
	}
	info := workbook.ParseTextbookInfo(rows[0])
	if err := s.validator.Struct(info); err != nil {
		return workbook.TextbookInfo{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Book_ID and name are required")
	}
	return info, nil
}

func sheetRows(wb *spreadsheet.Workbook, idx int) []spreadsheet.Row {
	sheet, ok := wb.Sheet(idx)
	if !ok {
		return nil
	}
	return sheet.Rows
}

func parseQuestions(rows []spreadsheet.Row) []models.Question {
	questions := make([]models.Question, 0, len(rows))
	for i, row := range rows {
		parsed, ok := workbook.ParseQuestionRow(row)
		if !ok {
			continue
		}
		key := parsed.Key
		if key == "" {
			key = fmt.Sprintf("Q-%d", i)
		}
		questions = append(questions, models.Question{
			QuestionKey: key,
			Content:     parsed.Content,
			ContentAR:   parsed.ContentAR,
			QType:       classifyQuestion(len(questions), parsed.TypeText),
			Tag:         parsed.Tag,
			Options:     parsed.Options,
			SortOrder:   i + 1,
		})
	}
	return questions
}

// classifyQuestion tags the idx-th kept question. The leading radar
// dimensions ignore the type text.
func classifyQuestion(idx int, typeText string) models.QuestionType {
	switch {
	case idx < models.RadarDimensions:
		return models.QuestionTypeRadar
	case strings.Contains(typeText, workbook.SummaryKeyword):
		return models.QuestionTypeCommentTrigger
	case strings.Contains(typeText, workbook.StageKeyword):
		return models.QuestionTypeGrowthTrigger
	default:
		return models.QuestionTypeChoice
	}
}

func parseModules(rows []spreadsheet.Row) []models.KnowledgeModule {
	modules := make([]models.KnowledgeModule, 0, len(rows))
	for _, row := range rows {
		parsed, ok := workbook.ParseModuleRow(row)
		if !ok {
			continue
		}
		modules = append(modules, models.KnowledgeModule{
			Title:     parsed.Title,
			TitleAR:   parsed.TitleAR,
			Content:   parsed.Content,
			ContentAR: parsed.ContentAR,
			SortOrder: parsed.SortOrder,
		})
	}
	return modules
}

func (s *TextbookImportService) parseGrowthRules(rows []spreadsheet.Row) []models.GrowthRule {
	rules := make([]models.GrowthRule, 0, len(rows))
	for i, row := range rows {
		parsed, ok := workbook.ParseGrowthRow(row)
		if !ok {
			s.logger.Warn("growth rule without option key skipped", zap.Int("row", i+2))
			continue
		}
		rules = append(rules, models.GrowthRule{
			TriggerKey:    parsed.TriggerKey,
			StageName:     parsed.StageName,
			StageNameAR:   parsed.StageNameAR,
			DisplayText:   parsed.DisplayText,
			DisplayTextAR: parsed.DisplayTextAR,
			Position:      parsed.Position,
		})
	}
	return rules
}

func parseCommentRules(rows []spreadsheet.Row) []models.CommentRule {
	rules := make([]models.CommentRule, 0, len(rows))
	for _, row := range rows {
		parsed, ok := workbook.ParseCommentRow(row)
		if !ok {
			continue
		}
		rules = append(rules, models.CommentRule{
			TriggerKey: parsed.TriggerKey,
			Summary:    parsed.Summary,
			FullText:   parsed.FullText,
			FullTextAR: parsed.FullTextAR,
		})
	}
	return rules
}
