package dto

import (
	"time"

	"github.com/yarayan327-hash/Trailclass-REPORT/internal/models"
)

// SubmitEvaluationRequest captures POST /teacher/evaluations payload.
type SubmitEvaluationRequest struct {
	SessionID    string         `json:"sessionId" validate:"required"`
	StudentName  string         `json:"studentName" validate:"required"`
	Scores       map[string]int `json:"scores" validate:"required"`
	Feedback     string         `json:"feedback"`
	MaterialName string         `json:"materialName"`
	MaterialID   *string        `json:"materialId,omitempty"`
}

// EvaluationResponse is returned after a report was stored.
type EvaluationResponse struct {
	ReportID string `json:"reportId"`
	Created  bool   `json:"created"`
}

// ReportShareResponse carries a signed public link to a report.
type ReportShareResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ReportView is a report with the knowledge modules of its material.
type ReportView struct {
	models.ReportDetail
	Modules []models.KnowledgeModule `json:"modules"`
}
