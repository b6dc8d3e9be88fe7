package models

import (
	"time"

	"github.com/naveenbxyz/iclm/pkg/domain"
)

// CommunicationStatus tracks delivery of an outbound communication.
type CommunicationStatus string

const (
	CommunicationSent CommunicationStatus = "sent"
)

// ClientCommunication is an outbound notification generated when a workflow
// reaches its communication step. Appended, never mutated, once created.
type ClientCommunication struct {
	CommunicationID domain.CommunicationID `json:"communication_id"`
	ClientID        domain.ClientID        `json:"client_id"`
	Type            string                 `json:"type"`
	Subject         string                 `json:"subject"`
	Body            string                 `json:"body"`
	Status          CommunicationStatus    `json:"status"`
	SentAt          time.Time              `json:"sent_at"`
}
