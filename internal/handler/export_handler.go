package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/service"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/export"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/response"
)

const exportFormatJSON = "json"

type exportService interface {
	Rows(ctx context.Context) ([]dto.ExportRow, error)
	Render(ctx context.Context, format export.Format) (*service.ExportFile, error)
}

// ExportHandler serves the flat session export.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Sessions godoc
// @Summary Export sessions with their reports
// @Tags Exports
// @Produce json
// @Param format query string false "xlsx (default), csv, pdf or json"
// @Success 200 {object} response.Envelope
// @Router /admin/exports/sessions [get]
func (h *ExportHandler) Sessions(c *gin.Context) {
	raw := c.Query("format")
	if strings.EqualFold(strings.TrimSpace(raw), exportFormatJSON) {
		rows, err := h.exports.Rows(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, rows, nil)
		return
	}

	format, err := export.ParseFormat(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be xlsx, csv, pdf or json"))
		return
	}
	file, err := h.exports.Render(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
