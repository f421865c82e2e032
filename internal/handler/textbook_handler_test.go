package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/service"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
)

type textbookServiceMock struct {
	deleted []string
}

func (m *textbookServiceMock) List(ctx context.Context) ([]models.TextbookSummary, error) {
	return []models.TextbookSummary{{ID: "tb-1", BookID: "TB-1", Name: "Phonics 1"}}, nil
}

func (m *textbookServiceMock) Get(ctx context.Context, id string) (*models.Textbook, error) {
	if id != "tb-1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "textbook not found")
	}
	return &models.Textbook{ID: id, Name: "Phonics 1"}, nil
}

func (m *textbookServiceMock) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestTextbookHandler(t *testing.T) {
	mock := &textbookServiceMock{}
	h := NewTextbookHandler(mock)

	c, w := newGinContext(http.MethodGet, "/textbooks", nil)
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Phonics 1")

	c, w = newGinContext(http.MethodGet, "/textbooks/tb-9", nil)
	c.Params = gin.Params{{Key: "id", Value: "tb-9"}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	router := gin.New()
	router.DELETE("/admin/textbooks/:id", h.Delete)
	c, w = newGinContext(http.MethodDelete, "/admin/textbooks/tb-1", nil)
	router.ServeHTTP(w, c.Request)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"tb-1"}, mock.deleted)
}

func TestTemplateHandlerServesWorkbook(t *testing.T) {
	h := NewTemplateHandler(service.NewTemplateService())

	c, w := newGinContext(http.MethodGet, "/admin/templates/textbook", nil)
	h.Textbook(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), service.TextbookTemplateFilename)
	assert.Equal(t, "PK", w.Body.String()[:2])
}
