// Package comms generates outbound client communications for workflows that
// reach their terminal success step.
package comms

import (
	"fmt"
	"strings"
	"time"

	regmodels "github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/internal/workflow/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
)

// TypeRegulatorySummary tags the onboarding summary notification.
const TypeRegulatorySummary = "regulatory_summary"

// Generator renders client communications.
type Generator struct{}

// New constructs a Generator.
func New() *Generator {
	return &Generator{}
}

// RegulatorySummary builds the notification sent when onboarding clears its
// regulatory checks, addressed to the profile's contact and summarizing the
// applicable regulations.
func (g *Generator) RegulatorySummary(profile *regmodels.ClientProfile, regulations []string, now time.Time) models.ClientCommunication {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", profile.ContactPerson)
	fmt.Fprintf(&body, "Regulatory due diligence for %s has completed.\n\n", profile.EntityName)
	body.WriteString("The following regulations apply to your onboarding:\n")
	for _, regulation := range regulations {
		fmt.Fprintf(&body, "  - %s\n", regulation)
	}
	body.WriteString("\nOur onboarding team will contact you regarding the next stage.\n")

	return models.ClientCommunication{
		CommunicationID: domain.NewCommunicationID(),
		ClientID:        profile.ClientID,
		Type:            TypeRegulatorySummary,
		Subject:         fmt.Sprintf("Regulatory onboarding summary for %s", profile.EntityName),
		Body:            body.String(),
		Status:          models.CommunicationSent,
		SentAt:          now,
	}
}
