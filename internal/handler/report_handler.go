package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/response"
)

type reportService interface {
	Get(ctx context.Context, id string) (*dto.ReportView, error)
	ForSession(ctx context.Context, sessionID string) (*models.Report, error)
	Share(ctx context.Context, id string) (*dto.ReportShareResponse, error)
	GetShared(ctx context.Context, token string) (*dto.ReportView, error)
}

// ReportHandler exposes stored session reports.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Get godoc
// @Summary Get a report with its knowledge modules
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	view, err := h.reports.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// ForSession godoc
// @Summary Get the report stored for a session
// @Tags Reports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /teacher/sessions/{id}/report [get]
func (h *ReportHandler) ForSession(c *gin.Context) {
	report, err := h.reports.ForSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Share godoc
// @Summary Issue an expiring public link to a report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 201 {object} response.Envelope
// @Router /reports/{id}/share [post]
func (h *ReportHandler) Share(c *gin.Context) {
	share, err := h.reports.Share(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, share)
}

// Shared godoc
// @Summary Open a shared report
// @Tags Reports
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} response.Envelope
// @Router /shared-reports/{token} [get]
func (h *ReportHandler) Shared(c *gin.Context) {
	view, err := h.reports.GetShared(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
