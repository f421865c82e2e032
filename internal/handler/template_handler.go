package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/service"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/response"
)

type templateService interface {
	ScheduleTemplate() (*service.TemplateFile, error)
	TextbookTemplate() (*service.TemplateFile, error)
}

// TemplateHandler serves blank import workbooks.
type TemplateHandler struct {
	templates templateService
}

// NewTemplateHandler constructs the handler.
func NewTemplateHandler(templates templateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// Schedule godoc
// @Summary Download schedule import template
// @Tags Templates
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /admin/templates/schedule [get]
func (h *TemplateHandler) Schedule(c *gin.Context) {
	serveTemplate(c, h.templates.ScheduleTemplate)
}

// Textbook godoc
// @Summary Download bilingual textbook import template
// @Tags Templates
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /admin/templates/textbook [get]
func (h *TemplateHandler) Textbook(c *gin.Context) {
	serveTemplate(c, h.templates.TextbookTemplate)
}

func serveTemplate(c *gin.Context, build func() (*service.TemplateFile, error)) {
	file, err := build()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
