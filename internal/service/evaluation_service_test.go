package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/dto"
	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
	appErrors "github.com/yarayan327-hash/Trailclass-REPORT/pkg/errors"
)

type evaluationFixture struct {
	sessions  *fakeSessionStore
	reports   *fakeReportStore
	textbooks *fakeTextbookStore
	cache     *fakeCache
	svc       *EvaluationService
}

func newEvaluationFixture(t *testing.T) *evaluationFixture {
	t.Helper()
	f := &evaluationFixture{
		sessions:  newFakeSessionStore(),
		reports:   newFakeReportStore(),
		textbooks: newFakeTextbookStore(),
		cache:     &fakeCache{},
	}
	f.sessions.items["S-1"] = models.ClassSession{ID: "S-1", CourseName: "Demo L1", ClassTimeSaudi: time.Now()}
	_, err := f.textbooks.Replace(context.Background(), &models.Textbook{BookID: "TB-1", Name: "Phonics 1"})
	require.NoError(t, err)
	f.svc = NewEvaluationService(f.sessions, f.reports, f.textbooks, f.cache, nil, nil)
	return f
}

func evaluation() dto.SubmitEvaluationRequest {
	return dto.SubmitEvaluationRequest{
		SessionID:   "S-1",
		StudentName: "  Sarah ",
		Scores:      map[string]int{"Fluency": 4, "Grammar": 5},
		Feedback:    "Well done",
	}
}

func TestSubmitCreatesReport(t *testing.T) {
	f := newEvaluationFixture(t)
	req := evaluation()
	req.MaterialName = " Phonics 1 "

	resp, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, &dto.EvaluationResponse{ReportID: "rp-S-1", Created: true}, resp)

	stored := f.reports.bySession["S-1"]
	assert.Equal(t, "Sarah", stored.ActualStudentName)
	assert.Equal(t, models.Scores{"Fluency": 4, "Grammar": 5}, stored.Scores)
	require.NotNil(t, stored.MaterialID)
	assert.Equal(t, "tb-1", *stored.MaterialID)
	assert.Equal(t, "Phonics 1", *stored.FallbackMaterialName)
	assert.Equal(t, []string{AdminSessionsCachePattern}, f.cache.invalidated)
}

func TestSubmitTwiceOverwritesOnce(t *testing.T) {
	f := newEvaluationFixture(t)
	_, err := f.svc.Submit(context.Background(), evaluation())
	require.NoError(t, err)

	second := evaluation()
	second.Feedback = "Revised"
	second.MaterialName = "Unknown Book"
	resp, err := f.svc.Submit(context.Background(), second)
	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, "rp-S-1", resp.ReportID)
	assert.Equal(t, 2, f.reports.creates)
	assert.Equal(t, 1, f.reports.updates)
	assert.Len(t, f.reports.bySession, 1)

	stored := f.reports.bySession["S-1"]
	assert.Equal(t, "Revised", stored.Feedback)
	assert.Nil(t, stored.MaterialID)
	assert.Equal(t, "Unknown Book", *stored.FallbackMaterialName)
}

func TestSubmitUpdateFailureIsHardError(t *testing.T) {
	f := newEvaluationFixture(t)
	_, err := f.svc.Submit(context.Background(), evaluation())
	require.NoError(t, err)

	f.reports.updateErr = errors.New("lock timeout")
	_, err = f.svc.Submit(context.Background(), evaluation())
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Equal(t, "Failed to update report", appErrors.FromError(err).Message)
	assert.Equal(t, 1, f.reports.updates)
}

func TestSubmitCreateFailureDoesNotRetry(t *testing.T) {
	f := newEvaluationFixture(t)
	f.reports.createErr = errors.New("disk full")

	_, err := f.svc.Submit(context.Background(), evaluation())
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Zero(t, f.reports.updates)
	assert.Empty(t, f.cache.invalidated)
}

func TestSubmitValidatesPayload(t *testing.T) {
	f := newEvaluationFixture(t)
	cases := map[string]func(*dto.SubmitEvaluationRequest){
		"missing session": func(r *dto.SubmitEvaluationRequest) { r.SessionID = "" },
		"missing student": func(r *dto.SubmitEvaluationRequest) { r.StudentName = "" },
		"no scores":       func(r *dto.SubmitEvaluationRequest) { r.Scores = nil },
		"score too high":  func(r *dto.SubmitEvaluationRequest) { r.Scores["Fluency"] = 6 },
		"score too low":   func(r *dto.SubmitEvaluationRequest) { r.Scores["Fluency"] = 0 },
		"blank dimension": func(r *dto.SubmitEvaluationRequest) { r.Scores[" "] = 3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := evaluation()
			mutate(&req)
			_, err := f.svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
	assert.Zero(t, f.reports.creates)
}

func TestSubmitUnknownSession(t *testing.T) {
	f := newEvaluationFixture(t)
	req := evaluation()
	req.SessionID = "S-404"

	_, err := f.svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "Session not found", appErrors.FromError(err).Message)
}

func TestSubmitExplicitMaterialID(t *testing.T) {
	f := newEvaluationFixture(t)

	req := evaluation()
	req.MaterialID = strPtr("tb-1")
	_, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	stored := f.reports.bySession["S-1"]
	assert.Equal(t, "tb-1", *stored.MaterialID)
	assert.Equal(t, "Phonics 1", *stored.FallbackMaterialName)

	req.MaterialID = strPtr("tb-404")
	_, err = f.svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "material not found", appErrors.FromError(err).Message)
}
