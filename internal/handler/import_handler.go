package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/response"
)

// DefaultMaxUploadBytes caps workbook uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

type adminImporter interface {
	UploadSchedule(ctx context.Context, data []byte) dto.ActionResult
	UploadTextbook(ctx context.Context, data []byte) dto.ActionResult
}

// ImportHandler receives admin workbook uploads.
type ImportHandler struct {
	imports  adminImporter
	maxBytes int64
}

// NewImportHandler constructs the handler. maxBytes <= 0 uses the default.
func NewImportHandler(imports adminImporter, maxBytes int64) *ImportHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &ImportHandler{imports: imports, maxBytes: maxBytes}
}

// UploadSchedule godoc
// @Summary Import class schedule workbook
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Schedule workbook (.xlsx)"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /admin/imports/schedule [post]
func (h *ImportHandler) UploadSchedule(c *gin.Context) {
	data, err := h.readUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondAction(c, h.imports.UploadSchedule(c.Request.Context(), data))
}

// UploadTextbook godoc
// @Summary Import textbook workbook
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Textbook workbook (.xlsx)"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /admin/imports/textbook [post]
func (h *ImportHandler) UploadTextbook(c *gin.Context) {
	data, err := h.readUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondAction(c, h.imports.UploadTextbook(c.Request.Context(), data))
}

func (h *ImportHandler) readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+(1<<20))
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, appErrors.ErrPayloadTooLarge
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if fileHeader.Size > h.maxBytes {
		return nil, appErrors.ErrPayloadTooLarge
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxBytes+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to buffer file")
	}
	if int64(len(data)) > h.maxBytes {
		return nil, appErrors.ErrPayloadTooLarge
	}
	return data, nil
}

func respondAction(c *gin.Context, result dto.ActionResult) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	response.JSON(c, status, result, nil)
}
