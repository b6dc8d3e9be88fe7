package domain

import "github.com/google/uuid"

// ClientID is the caller-supplied identifier of an onboarding client. It is
// opaque to this service; upstream registries own its format.
type ClientID string

func (id ClientID) String() string { return string(id) }

// ClassificationID identifies one regulatory classification run.
type ClassificationID string

func (id ClassificationID) String() string { return string(id) }

// NewClassificationID mints a fresh classification identifier.
func NewClassificationID() ClassificationID {
	return ClassificationID(uuid.NewString())
}

// WorkflowID identifies one onboarding workflow aggregate.
type WorkflowID string

func (id WorkflowID) String() string { return string(id) }

// NewWorkflowID mints a fresh workflow identifier.
func NewWorkflowID() WorkflowID {
	return WorkflowID(uuid.NewString())
}

// CheckID identifies a single check record of any variant.
type CheckID string

func (id CheckID) String() string { return string(id) }

// NewCheckID mints a fresh check identifier.
func NewCheckID() CheckID {
	return CheckID(uuid.NewString())
}

// CommunicationID identifies an outbound client communication.
type CommunicationID string

func (id CommunicationID) String() string { return string(id) }

// NewCommunicationID mints a fresh communication identifier.
func NewCommunicationID() CommunicationID {
	return CommunicationID(uuid.NewString())
}

// DocumentID identifies a document held by an upstream document system.
type DocumentID string

func (id DocumentID) String() string { return string(id) }
