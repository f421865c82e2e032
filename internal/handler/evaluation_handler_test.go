package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
)

type evaluationServiceMock struct {
	req     dto.SubmitEvaluationRequest
	created bool
}

func (m *evaluationServiceMock) Submit(ctx context.Context, req dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error) {
	m.req = req
	return &dto.EvaluationResponse{ReportID: "rp-" + req.SessionID, Created: m.created}, nil
}

func TestEvaluationHandlerSubmit(t *testing.T) {
	mock := &evaluationServiceMock{created: true}
	h := NewEvaluationHandler(mock)

	body := []byte(`{"sessionId":"S-1","studentName":"Sarah","scores":{"Fluency":4},"materialName":"Phonics 1"}`)
	c, w := newGinContext(http.MethodPost, "/teacher/evaluations", body)
	h.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "S-1", mock.req.SessionID)
	assert.Equal(t, 4, mock.req.Scores["Fluency"])
	assert.Equal(t, "Phonics 1", mock.req.MaterialName)
	assert.Contains(t, w.Body.String(), `"reportId":"rp-S-1"`)

	mock.created = false
	c, w = newGinContext(http.MethodPost, "/teacher/evaluations", body)
	h.Submit(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEvaluationHandlerRejectsMalformedJSON(t *testing.T) {
	h := NewEvaluationHandler(&evaluationServiceMock{})

	c, w := newGinContext(http.MethodPost, "/teacher/evaluations", []byte(`{"scores":"high"}`))
	h.Submit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
