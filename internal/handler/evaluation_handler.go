package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
	"github.com/yarayan327-hash/Trailclass-REPORT/pkg/response"
)

type evaluationService interface {
	Submit(ctx context.Context, req dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error)
}

// EvaluationHandler accepts teacher assessments.
type EvaluationHandler struct {
	evaluations evaluationService
}

// NewEvaluationHandler constructs the handler.
func NewEvaluationHandler(evaluations evaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

// Submit godoc
// @Summary Submit the evaluation of a session
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body dto.SubmitEvaluationRequest true "Evaluation"
// @Success 201 {object} response.Envelope
// @Success 200 {object} response.Envelope
// @Router /teacher/evaluations [post]
func (h *EvaluationHandler) Submit(c *gin.Context) {
	var req dto.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid evaluation payload"))
		return
	}
	result, err := h.evaluations.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Created {
		response.Created(c, result)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
