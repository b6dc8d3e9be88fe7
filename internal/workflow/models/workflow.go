package models

import (
	"time"

	regmodels "github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
)

// WorkflowStatus is the derived overall state of a workflow.
type WorkflowStatus string

const (
	WorkflowNotStarted WorkflowStatus = "not_started"
	WorkflowInProgress WorkflowStatus = "in_progress"
	WorkflowCompleted  WorkflowStatus = "completed"
	WorkflowRejected   WorkflowStatus = "rejected"
)

// RegulatoryWorkflow is the top-level onboarding aggregate. Created once per
// onboarding attempt, mutated only by the engine, never deleted: terminal
// workflows are retained for audit.
//
// Invariants:
//   - all five steps exist from creation, initially not_started
//   - Profile is nil until client_import completes
//   - ApplicableRegulations is empty until regulation_classification runs
//   - Classification is nil until produced
type RegulatoryWorkflow struct {
	WorkflowID            domain.WorkflowID                   `json:"workflow_id"`
	ClientID              domain.ClientID                     `json:"client_id"`
	Profile               *regmodels.ClientProfile            `json:"profile,omitempty"`
	ApplicableRegulations []string                            `json:"applicable_regulations,omitempty"`
	Steps                 map[StepName]*WorkflowStep          `json:"steps"`
	Classification        *regmodels.RegulatoryClassification `json:"classification,omitempty"`
	Communications        []ClientCommunication               `json:"communications,omitempty"`
	CreatedAt             time.Time                           `json:"created_at"`
	UpdatedAt             time.Time                           `json:"updated_at"`
}

// NewWorkflow creates a workflow with all steps present and not started.
func NewWorkflow(clientID domain.ClientID, now time.Time) *RegulatoryWorkflow {
	steps := make(map[StepName]*WorkflowStep, len(StepOrder()))
	for _, name := range StepOrder() {
		steps[name] = &WorkflowStep{Name: name, Status: StepStatusNotStarted}
	}
	return &RegulatoryWorkflow{
		WorkflowID: domain.NewWorkflowID(),
		ClientID:   clientID,
		Steps:      steps,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Step returns the named step; nil for names outside the fixed set.
func (w *RegulatoryWorkflow) Step(name StepName) *WorkflowStep {
	return w.Steps[name]
}

// OverallStatus derives the workflow-level state from its steps. A rejected
// manual review is terminal for the whole workflow; a failed step does not
// advance overall status, so a workflow whose only activity is a failed
// import still reports not_started.
func (w *RegulatoryWorkflow) OverallStatus() WorkflowStatus {
	if review := w.Steps[StepManualReview]; review != nil && review.Status == StepStatusRejected {
		return WorkflowRejected
	}
	if comm := w.Steps[StepClientCommunication]; comm != nil && comm.Status == StepStatusCompleted {
		return WorkflowCompleted
	}
	for _, step := range w.Steps {
		switch step.Status {
		case StepStatusInProgress, StepStatusCompleted, StepStatusManualReview, StepStatusApproved:
			return WorkflowInProgress
		}
	}
	return WorkflowNotStarted
}

// IsTerminal reports whether no step may be advanced anymore.
func (w *RegulatoryWorkflow) IsTerminal() bool {
	status := w.OverallStatus()
	return status == WorkflowRejected || status == WorkflowCompleted
}

// Progress is the fraction of steps that reached a final status.
func (w *RegulatoryWorkflow) Progress() float64 {
	if len(w.Steps) == 0 {
		return 0
	}
	final := 0
	for _, step := range w.Steps {
		if step.Status.IsFinal() {
			final++
		}
	}
	return float64(final) / float64(len(w.Steps))
}

// Clone returns a deep copy so store reads never alias stored state.
func (w *RegulatoryWorkflow) Clone() *RegulatoryWorkflow {
	if w == nil {
		return nil
	}
	cp := *w
	cp.Profile = w.Profile.Clone()
	cp.ApplicableRegulations = append([]string(nil), w.ApplicableRegulations...)
	cp.Steps = make(map[StepName]*WorkflowStep, len(w.Steps))
	for name, step := range w.Steps {
		cp.Steps[name] = step.Clone()
	}
	cp.Classification = w.Classification.Clone()
	cp.Communications = append([]ClientCommunication(nil), w.Communications...)
	return &cp
}
