// Package audit emits onboarding audit events. Events are advisory: a failed
// emit is logged by the caller, never blocks the workflow.
package audit

import (
	"context"
	"time"

	"github.com/naveenbxyz/iclm/pkg/domain"
)

// Event types emitted by the engine and services.
const (
	EventWorkflowCreated        = "workflow.created"
	EventStepAdvanced           = "workflow.step_advanced"
	EventReviewDecided          = "workflow.review_decided"
	EventCommunicationSent      = "workflow.communication_sent"
	EventClassificationComplete = "classification.completed"
)

// Event is one audit record.
type Event struct {
	Type       string            `json:"type"`
	ClientID   domain.ClientID   `json:"client_id,omitempty"`
	WorkflowID domain.WorkflowID `json:"workflow_id,omitempty"`
	Step       string            `json:"step,omitempty"`
	Detail     string            `json:"detail,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Publisher delivers audit events to the audit pipeline.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
	Close()
}

// Nop is the publisher used when no broker is configured.
type Nop struct{}

// Emit implements Publisher.
func (Nop) Emit(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Nop) Close() {}
