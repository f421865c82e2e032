package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/response"
)

type textbookService interface {
	List(ctx context.Context) ([]models.TextbookSummary, error)
	Get(ctx context.Context, id string) (*models.Textbook, error)
	Delete(ctx context.Context, id string) error
}

// TextbookHandler exposes the textbook catalogue.
type TextbookHandler struct {
	textbooks textbookService
}

// NewTextbookHandler constructs the handler.
func NewTextbookHandler(textbooks textbookService) *TextbookHandler {
	return &TextbookHandler{textbooks: textbooks}
}

// List godoc
// @Summary List textbooks
// @Tags Textbooks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /textbooks [get]
func (h *TextbookHandler) List(c *gin.Context) {
	items, err := h.textbooks.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get a textbook with questions, modules and rules
// @Tags Textbooks
// @Produce json
// @Param id path string true "Textbook ID"
// @Success 200 {object} response.Envelope
// @Router /textbooks/{id} [get]
func (h *TextbookHandler) Get(c *gin.Context) {
	tb, err := h.textbooks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tb, nil)
}

// Delete godoc
// @Summary Delete a textbook
// @Tags Textbooks
// @Param id path string true "Textbook ID"
// @Success 204
// @Router /admin/textbooks/{id} [delete]
func (h *TextbookHandler) Delete(c *gin.Context) {
	if err := h.textbooks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
