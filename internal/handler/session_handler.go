package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/middleware"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/response"
)

type sessionService interface {
	ListRecent(ctx context.Context) ([]models.SessionListItem, bool, error)
	ListForTeacher(ctx context.Context, teacherID string) ([]models.SessionListItem, error)
}

// SessionHandler lists class sessions.
type SessionHandler struct {
	sessions sessionService
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(sessions sessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// AdminList godoc
// @Summary List recent sessions with report status
// @Tags Sessions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/sessions [get]
func (h *SessionHandler) AdminList(c *gin.Context) {
	items, fromCache, err := h.sessions.ListRecent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, fromCache)
	response.JSON(c, http.StatusOK, items, nil, middleware.ExtractMeta(c))
}

// TeacherList godoc
// @Summary List sessions of the signed-in teacher
// @Tags Sessions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/sessions [get]
func (h *SessionHandler) TeacherList(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	teacherID := teacherIDFor(c, claims)
	if teacherID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "account is not linked to a teacher"))
		return
	}
	items, err := h.sessions.ListForTeacher(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
