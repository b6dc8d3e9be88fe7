package models

import (
	"time"

	"github.com/naveenbxyz/iclm/pkg/domain"
)

// HighLevelCheck records the outcome of the eligibility criteria for one
// regulation. Criteria maps criterion name to pass/fail; Status is passed
// only when every criterion holds.
type HighLevelCheck struct {
	CheckID        domain.CheckID  `json:"check_id"`
	RegulationName string          `json:"regulation_name"`
	Description    string          `json:"description"`
	Status         CheckStatus     `json:"status"`
	Criteria       map[string]bool `json:"criteria"`
	CreatedAt      time.Time       `json:"created_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// DocumentCheck records AI document validation for one regulation. The
// manual-review sub-state is independent of the AI verdict: a non-compliant
// verdict parks the check on a reviewer while the AI status says why.
//
// ManualNotes is the only reviewer-mutable field after creation.
type DocumentCheck struct {
	CheckID            domain.CheckID    `json:"check_id"`
	RegulationName     string            `json:"regulation_name"`
	DocumentType       string            `json:"document_type"`
	DocumentID         domain.DocumentID `json:"document_id"`
	AIValidationStatus CheckStatus       `json:"ai_validation_status"`
	ManualReviewStatus CheckStatus       `json:"manual_review_status"`
	AIConfidence       float64           `json:"ai_confidence"`
	AIFeedback         string            `json:"ai_feedback"`
	ManualNotes        string            `json:"manual_notes"`
	CreatedAt          time.Time         `json:"created_at"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
}

// DataQualityCheck records the quality score of one monitored field for one
// regulation. Score is in [0,1]; passing threshold is 0.8.
type DataQualityCheck struct {
	CheckID        domain.CheckID `json:"check_id"`
	RegulationName string         `json:"regulation_name"`
	FieldName      string         `json:"field_name"`
	Status         CheckStatus    `json:"status"`
	Score          float64        `json:"dq_score"`
	Issues         []string       `json:"issues,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}
