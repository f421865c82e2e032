package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/spreadsheet"
)

// fakeSessionStore keeps sessions in memory. UpsertAll applies all rows or
// none, like the transactional repository.
type fakeSessionStore struct {
	items      map[string]models.ClassSession
	failOn     string
	upserts    int
	batchCalls int
	records    []models.SessionExportRecord
	exportErr  error
	recent     []models.SessionListItem
	listCalls  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{items: make(map[string]models.ClassSession)}
}

func (f *fakeSessionStore) Upsert(ctx context.Context, session *models.ClassSession) (bool, error) {
	f.upserts++
	if session.ID == f.failOn {
		return false, errors.New("connection reset")
	}
	_, exists := f.items[session.ID]
	f.items[session.ID] = *session
	return !exists, nil
}

func (f *fakeSessionStore) UpsertAll(ctx context.Context, sessions []models.ClassSession) ([]bool, error) {
	f.batchCalls++
	staged := make(map[string]models.ClassSession, len(f.items))
	for k, v := range f.items {
		staged[k] = v
	}
	created := make([]bool, len(sessions))
	for i, s := range sessions {
		if s.ID == f.failOn {
			return nil, errors.New("connection reset")
		}
		_, exists := staged[s.ID]
		staged[s.ID] = s
		created[i] = !exists
	}
	f.items = staged
	return created, nil
}

func (f *fakeSessionStore) FindByID(ctx context.Context, id string) (*models.ClassSession, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f *fakeSessionStore) ListRecent(ctx context.Context, limit int) ([]models.SessionListItem, error) {
	f.listCalls++
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeSessionStore) ListByTeacher(ctx context.Context, teacherID string) ([]models.SessionListItem, error) {
	var out []models.SessionListItem
	for _, s := range f.items {
		if s.TeacherID == teacherID {
			out = append(out, models.SessionListItem{ClassSession: s})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClassTimeSaudi.Before(out[j].ClassTimeSaudi) })
	return out, nil
}

func (f *fakeSessionStore) ListForExport(ctx context.Context) ([]models.SessionExportRecord, error) {
	return f.records, f.exportErr
}

// fakeCache records invalidations and keeps one cached session list.
type fakeCache struct {
	invalidated []string
	stored      []models.SessionListItem
	hasValue    bool
	sets        int
	getErr      error
}

func (f *fakeCache) Invalidate(ctx context.Context, pattern string) error {
	f.invalidated = append(f.invalidated, pattern)
	f.hasValue = false
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	if !f.hasValue {
		return false, nil
	}
	*dest.(*[]models.SessionListItem) = f.stored
	return true, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.sets++
	f.stored = value.([]models.SessionListItem)
	f.hasValue = true
	return nil
}

// fakeTextbookStore replaces textbooks by book id.
type fakeTextbookStore struct {
	byBookID   map[string]*models.Textbook
	replaceErr error
	replaces   int
}

func newFakeTextbookStore() *fakeTextbookStore {
	return &fakeTextbookStore{byBookID: make(map[string]*models.Textbook)}
}

func (f *fakeTextbookStore) Replace(ctx context.Context, tb *models.Textbook) (bool, error) {
	f.replaces++
	if f.replaceErr != nil {
		return false, f.replaceErr
	}
	existing, ok := f.byBookID[tb.BookID]
	if ok {
		tb.ID = existing.ID
	} else {
		tb.ID = fmt.Sprintf("tb-%d", len(f.byBookID)+1)
	}
	cp := *tb
	f.byBookID[tb.BookID] = &cp
	return !ok, nil
}

func (f *fakeTextbookStore) List(ctx context.Context) ([]models.TextbookSummary, error) {
	var out []models.TextbookSummary
	for _, tb := range f.byBookID {
		out = append(out, models.TextbookSummary{ID: tb.ID, BookID: tb.BookID, Name: tb.Name, Type: tb.Type, QuestionCount: len(tb.Questions)})
	}
	return out, nil
}

func (f *fakeTextbookStore) FindByID(ctx context.Context, id string) (*models.Textbook, error) {
	for _, tb := range f.byBookID {
		if tb.ID == id {
			cp := *tb
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTextbookStore) FindByName(ctx context.Context, name string) (*models.Textbook, error) {
	for _, tb := range f.byBookID {
		if tb.Name == name {
			cp := *tb
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTextbookStore) ListModules(ctx context.Context, textbookID string) ([]models.KnowledgeModule, error) {
	tb, err := f.FindByID(ctx, textbookID)
	if err != nil {
		return nil, nil
	}
	return tb.Modules, nil
}

func (f *fakeTextbookStore) Delete(ctx context.Context, id string) error {
	for key, tb := range f.byBookID {
		if tb.ID == id {
			delete(f.byBookID, key)
			return nil
		}
	}
	return sql.ErrNoRows
}

// fakeReportStore enforces one report per session with a postgres style
// unique violation.
type fakeReportStore struct {
	bySession map[string]*models.Report
	createErr error
	updateErr error
	creates   int
	updates   int
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{bySession: make(map[string]*models.Report)}
}

func (f *fakeReportStore) Create(ctx context.Context, report *models.Report) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.bySession[report.SessionID]; ok {
		return fmt.Errorf("create report: %w", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	}
	report.ID = "rp-" + report.SessionID
	cp := *report
	f.bySession[report.SessionID] = &cp
	return nil
}

func (f *fakeReportStore) UpdateBySession(ctx context.Context, report *models.Report) error {
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	existing, ok := f.bySession[report.SessionID]
	if !ok {
		return sql.ErrNoRows
	}
	report.ID = existing.ID
	cp := *report
	f.bySession[report.SessionID] = &cp
	return nil
}

func (f *fakeReportStore) FindBySession(ctx context.Context, sessionID string) (*models.Report, error) {
	r, ok := f.bySession[sessionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReportStore) FindDetail(ctx context.Context, id string) (*models.ReportDetail, error) {
	for _, r := range f.bySession {
		if r.ID == id {
			return &models.ReportDetail{Report: *r, CourseName: "Demo L1", TeacherName: "Teacher A"}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func mustEncode(sheets ...spreadsheet.SheetData) []byte {
	data, err := spreadsheet.Encode(sheets...)
	if err != nil {
		panic(err)
	}
	return data
}

func strPtr(s string) *string {
	return &s
}
