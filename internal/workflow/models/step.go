package models

import (
	"time"

	"github.com/naveenbxyz/iclm/pkg/domain"
	regmodels "github.com/naveenbxyz/iclm/internal/regulatory/models"
)

// StepName enumerates the fixed, ordered workflow steps.
type StepName string

const (
	StepClientImport             StepName = "client_import"
	StepRegulationClassification StepName = "regulation_classification"
	StepDocumentValidation       StepName = "document_validation"
	StepManualReview             StepName = "manual_review"
	StepClientCommunication      StepName = "client_communication"
)

// StepOrder returns the canonical step sequence.
func StepOrder() []StepName {
	return []StepName{
		StepClientImport,
		StepRegulationClassification,
		StepDocumentValidation,
		StepManualReview,
		StepClientCommunication,
	}
}

// IsValid reports whether n is a member of the enumeration.
func (n StepName) IsValid() bool {
	switch n {
	case StepClientImport, StepRegulationClassification, StepDocumentValidation,
		StepManualReview, StepClientCommunication:
		return true
	}
	return false
}

// StepStatus enumerates step lifecycle states.
//
// Transitions: not_started → in_progress → {completed | failed |
// manual_review | approved | rejected}. A failed step may be re-advanced by
// the caller; completed, approved and rejected are final.
type StepStatus string

const (
	StepStatusNotStarted   StepStatus = "not_started"
	StepStatusInProgress   StepStatus = "in_progress"
	StepStatusCompleted    StepStatus = "completed"
	StepStatusFailed       StepStatus = "failed"
	StepStatusManualReview StepStatus = "manual_review"
	StepStatusApproved     StepStatus = "approved"
	StepStatusRejected     StepStatus = "rejected"
)

// IsValid reports whether s is a member of the enumeration.
func (s StepStatus) IsValid() bool {
	switch s {
	case StepStatusNotStarted, StepStatusInProgress, StepStatusCompleted,
		StepStatusFailed, StepStatusManualReview, StepStatusApproved, StepStatusRejected:
		return true
	}
	return false
}

// IsFinal reports whether the step admits no further advancement. Failed is
// deliberately not final: the caller may retry the step.
func (s StepStatus) IsFinal() bool {
	return s == StepStatusCompleted || s == StepStatusApproved || s == StepStatusRejected
}

// ImportResult is the client_import step payload.
type ImportResult struct {
	EntityName   string                `json:"entity_name"`
	EntityType   regmodels.EntityType  `json:"entity_type"`
	Jurisdiction string                `json:"jurisdiction"`
	ProductCount int                   `json:"product_count"`
}

// ClassificationResult is the regulation_classification step payload.
type ClassificationResult struct {
	ClassificationID domain.ClassificationID `json:"classification_id"`
	Basis            string                  `json:"basis"`
	Regulations      []string                `json:"regulations"`
	RegulationCount  int                     `json:"regulation_count"`
	OverallStatus    regmodels.CheckStatus   `json:"overall_status"`
}

// DocumentValidationResult is the document_validation step payload.
// MissingDocuments maps regulation name to the required document types the
// completeness service reported unavailable.
type DocumentValidationResult struct {
	RegulationsChecked int                 `json:"regulations_checked"`
	Complete           bool                `json:"complete"`
	MissingDocuments   map[string][]string `json:"missing_documents,omitempty"`
}

// ManualReviewResult is the manual_review step payload.
type ManualReviewResult struct {
	Decision  ReviewDecision `json:"decision"`
	Notes     string         `json:"notes,omitempty"`
	DecidedAt time.Time      `json:"decided_at"`
}

// CommunicationResult is the client_communication step payload.
type CommunicationResult struct {
	CommunicationID domain.CommunicationID `json:"communication_id"`
	Recipient       string                 `json:"recipient"`
	Subject         string                 `json:"subject"`
}

// StepResult is the tagged variant payload attached to a step; exactly one
// member is non-nil, matching the step kind.
type StepResult struct {
	Import             *ImportResult             `json:"import,omitempty"`
	Classification     *ClassificationResult     `json:"classification,omitempty"`
	DocumentValidation *DocumentValidationResult `json:"document_validation,omitempty"`
	ManualReview       *ManualReviewResult       `json:"manual_review,omitempty"`
	Communication      *CommunicationResult      `json:"communication,omitempty"`
}

// ReviewDecision is a reviewer's verdict on a parked workflow.
type ReviewDecision string

const (
	ReviewApproved ReviewDecision = "approved"
	ReviewRejected ReviewDecision = "rejected"
)

// IsValid reports whether d is a member of the enumeration.
func (d ReviewDecision) IsValid() bool {
	return d == ReviewApproved || d == ReviewRejected
}

// WorkflowStep tracks one step's execution state.
//
// Invariants:
//   - StartedAt precedes CompletedAt when both are set
//   - a step reaches exactly one final status
type WorkflowStep struct {
	Name        StepName    `json:"name"`
	Status      StepStatus  `json:"status"`
	StartedAt   *time.Time  `json:"started_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	Result      *StepResult `json:"result,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// Clone returns a deep copy of the step.
func (s *WorkflowStep) Clone() *WorkflowStep {
	if s == nil {
		return nil
	}
	cp := *s
	cp.StartedAt = cloneTime(s.StartedAt)
	cp.CompletedAt = cloneTime(s.CompletedAt)
	if s.Result != nil {
		result := *s.Result
		if s.Result.Import != nil {
			v := *s.Result.Import
			result.Import = &v
		}
		if s.Result.Classification != nil {
			v := *s.Result.Classification
			v.Regulations = append([]string(nil), v.Regulations...)
			result.Classification = &v
		}
		if s.Result.DocumentValidation != nil {
			v := *s.Result.DocumentValidation
			if v.MissingDocuments != nil {
				missing := make(map[string][]string, len(v.MissingDocuments))
				for reg, docs := range v.MissingDocuments {
					missing[reg] = append([]string(nil), docs...)
				}
				v.MissingDocuments = missing
			}
			result.DocumentValidation = &v
		}
		if s.Result.ManualReview != nil {
			v := *s.Result.ManualReview
			result.ManualReview = &v
		}
		if s.Result.Communication != nil {
			v := *s.Result.Communication
			result.Communication = &v
		}
		cp.Result = &result
	}
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	ts := *t
	return &ts
}
