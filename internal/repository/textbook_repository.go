package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/database"
)

const textbookColumns = `id, book_id, name, type, cover_url, created_at, updated_at`

var textbookChildTables = []string{
	"textbook_questions",
	"textbook_knowledge_modules",
	"textbook_growth_rules",
	"textbook_comment_rules",
}

// TextbookRepository persists textbooks and their child collections.
type TextbookRepository struct {
	db *sqlx.DB
}

// NewTextbookRepository creates a new repository instance.
func NewTextbookRepository(db *sqlx.DB) *TextbookRepository {
	return &TextbookRepository{db: db}
}

// Replace stores tb keyed by its book id inside one transaction. An existing
// textbook keeps its id, gets its scalar fields overwritten and loses every
// previous child before the new children are inserted. It reports whether a
// new textbook was created.
func (r *TextbookRepository) Replace(ctx context.Context, tb *models.Textbook) (bool, error) {
	var created bool
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		created, err = r.replaceTx(ctx, tx, tb)
		return err
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *TextbookRepository) replaceTx(ctx context.Context, tx *sqlx.Tx, tb *models.Textbook) (bool, error) {
	now := time.Now().UTC()
	tb.UpdatedAt = now

	var existing models.Textbook
	err := tx.GetContext(ctx, &existing, `SELECT `+textbookColumns+` FROM textbooks WHERE book_id = $1 FOR UPDATE`, tb.BookID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		tb.ID = uuid.NewString()
		tb.CreatedAt = now
		const insert = `INSERT INTO textbooks (id, book_id, name, type, cover_url, created_at, updated_at)
        VALUES (:id, :book_id, :name, :type, :cover_url, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, insert, tb); err != nil {
			return false, fmt.Errorf("insert textbook: %w", err)
		}
	case err != nil:
		return false, fmt.Errorf("find textbook %s: %w", tb.BookID, err)
	default:
		tb.ID = existing.ID
		tb.CreatedAt = existing.CreatedAt
		const update = `UPDATE textbooks SET name = :name, type = :type, cover_url = :cover_url, updated_at = :updated_at WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, update, tb); err != nil {
			return false, fmt.Errorf("update textbook: %w", err)
		}
		for _, table := range textbookChildTables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE textbook_id = $1", tb.ID); err != nil {
				return false, fmt.Errorf("clear %s: %w", table, err)
			}
		}
	}

	if err := r.insertChildrenTx(ctx, tx, tb); err != nil {
		return false, err
	}
	return existing.ID == "", nil
}

func (r *TextbookRepository) insertChildrenTx(ctx context.Context, tx *sqlx.Tx, tb *models.Textbook) error {
	const insertQuestion = `INSERT INTO textbook_questions (id, textbook_id, question_key, content, content_ar, q_type, tag, options, sort_order)
        VALUES (:id, :textbook_id, :question_key, :content, :content_ar, :q_type, :tag, :options, :sort_order)`
	for i := range tb.Questions {
		q := &tb.Questions[i]
		q.ID = uuid.NewString()
		q.TextbookID = tb.ID
		if _, err := tx.NamedExecContext(ctx, insertQuestion, q); err != nil {
			return fmt.Errorf("insert textbook question: %w", err)
		}
	}

	const insertModule = `INSERT INTO textbook_knowledge_modules (id, textbook_id, title, title_ar, content, content_ar, sort_order)
        VALUES (:id, :textbook_id, :title, :title_ar, :content, :content_ar, :sort_order)`
	for i := range tb.Modules {
		m := &tb.Modules[i]
		m.ID = uuid.NewString()
		m.TextbookID = tb.ID
		if _, err := tx.NamedExecContext(ctx, insertModule, m); err != nil {
			return fmt.Errorf("insert knowledge module: %w", err)
		}
	}

	const insertGrowth = `INSERT INTO textbook_growth_rules (id, textbook_id, trigger_key, stage_name, stage_name_ar, display_text, display_text_ar, position)
        VALUES (:id, :textbook_id, :trigger_key, :stage_name, :stage_name_ar, :display_text, :display_text_ar, :position)`
	for i := range tb.GrowthRules {
		g := &tb.GrowthRules[i]
		g.ID = uuid.NewString()
		g.TextbookID = tb.ID
		if _, err := tx.NamedExecContext(ctx, insertGrowth, g); err != nil {
			return fmt.Errorf("insert growth rule: %w", err)
		}
	}

	const insertComment = `INSERT INTO textbook_comment_rules (id, textbook_id, trigger_key, summary, full_text, full_text_ar)
        VALUES (:id, :textbook_id, :trigger_key, :summary, :full_text, :full_text_ar)`
	for i := range tb.CommentRules {
		c := &tb.CommentRules[i]
		c.ID = uuid.NewString()
		c.TextbookID = tb.ID
		if _, err := tx.NamedExecContext(ctx, insertComment, c); err != nil {
			return fmt.Errorf("insert comment rule: %w", err)
		}
	}
	return nil
}

// List returns every textbook with its question count, most recently
// updated first.
func (r *TextbookRepository) List(ctx context.Context) ([]models.TextbookSummary, error) {
	const query = `SELECT t.id, t.book_id, t.name, t.type, t.cover_url, t.updated_at,
        (SELECT COUNT(*) FROM textbook_questions q WHERE q.textbook_id = t.id) AS question_count
        FROM textbooks t ORDER BY t.updated_at DESC`
	var items []models.TextbookSummary
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list textbooks: %w", err)
	}
	return items, nil
}

// FindByID returns a textbook with all child collections in display order.
func (r *TextbookRepository) FindByID(ctx context.Context, id string) (*models.Textbook, error) {
	var tb models.Textbook
	if err := r.db.GetContext(ctx, &tb, `SELECT `+textbookColumns+` FROM textbooks WHERE id = $1`, id); err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, &tb); err != nil {
		return nil, err
	}
	return &tb, nil
}

// FindByName returns the most recently updated textbook with the given
// display name, without children.
func (r *TextbookRepository) FindByName(ctx context.Context, name string) (*models.Textbook, error) {
	var tb models.Textbook
	query := `SELECT ` + textbookColumns + ` FROM textbooks WHERE name = $1 ORDER BY updated_at DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &tb, query, name); err != nil {
		return nil, err
	}
	return &tb, nil
}

// ListModules returns the knowledge modules of a textbook ordered by sort.
func (r *TextbookRepository) ListModules(ctx context.Context, textbookID string) ([]models.KnowledgeModule, error) {
	const query = `SELECT id, textbook_id, title, title_ar, content, content_ar, sort_order
        FROM textbook_knowledge_modules WHERE textbook_id = $1 ORDER BY sort_order ASC, title ASC`
	var modules []models.KnowledgeModule
	if err := r.db.SelectContext(ctx, &modules, query, textbookID); err != nil {
		return nil, fmt.Errorf("list knowledge modules: %w", err)
	}
	return modules, nil
}

func (r *TextbookRepository) loadChildren(ctx context.Context, tb *models.Textbook) error {
	const questions = `SELECT id, textbook_id, question_key, content, content_ar, q_type, tag, options, sort_order
        FROM textbook_questions WHERE textbook_id = $1 ORDER BY sort_order ASC`
	if err := r.db.SelectContext(ctx, &tb.Questions, questions, tb.ID); err != nil {
		return fmt.Errorf("load textbook questions: %w", err)
	}

	modules, err := r.ListModules(ctx, tb.ID)
	if err != nil {
		return err
	}
	tb.Modules = modules

	const growth = `SELECT id, textbook_id, trigger_key, stage_name, stage_name_ar, display_text, display_text_ar, position
        FROM textbook_growth_rules WHERE textbook_id = $1 ORDER BY position ASC, trigger_key ASC`
	if err := r.db.SelectContext(ctx, &tb.GrowthRules, growth, tb.ID); err != nil {
		return fmt.Errorf("load growth rules: %w", err)
	}

	const comments = `SELECT id, textbook_id, trigger_key, summary, full_text, full_text_ar
        FROM textbook_comment_rules WHERE textbook_id = $1 ORDER BY trigger_key ASC`
	if err := r.db.SelectContext(ctx, &tb.CommentRules, comments, tb.ID); err != nil {
		return fmt.Errorf("load comment rules: %w", err)
	}
	return nil
}

// Delete removes a textbook. Children go with it and reports keep their
// fallback name with the link cleared.
func (r *TextbookRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM textbooks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete textbook: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete textbook rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
