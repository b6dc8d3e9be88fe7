// Package checks implements the three check processors: high-level
// eligibility, document validation and data quality.
package checks

import (
	"fmt"
	"strings"
	"time"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
)

// Criterion names for high-level eligibility checks.
const (
	CriterionAUMThreshold     = "aum_threshold_met"
	CriterionJurisdiction     = "jurisdiction_supported"
	CriterionEntityType       = "entity_type_eligible"
	CriterionBusinessApproved = "business_type_approved"
)

// aumGatedRegulations demand the elevated AUM threshold; every other
// regulation passes the AUM criterion unconditionally.
var aumGatedRegulations = map[string]bool{
	"AIFMD": true,
	"UCITS": true,
}

const aumGateUSD = 100_000_000

var supportedJurisdictions = map[string]bool{"US": true, "UK": true, "EU": true, "SG": true}

var eligibleEntityTypes = map[models.EntityType]bool{
	models.EntityHedgeFund:         true,
	models.EntityInvestmentAdvisor: true,
	models.EntityBank:              true,
}

// HighLevelChecker evaluates the fixed eligibility criteria. Pure and
// synchronous; the check is terminal the moment it is created.
type HighLevelChecker struct{}

// NewHighLevelChecker constructs a HighLevelChecker.
func NewHighLevelChecker() *HighLevelChecker {
	return &HighLevelChecker{}
}

// Evaluate runs all criteria for one regulation. Status is passed iff every
// criterion holds.
func (c *HighLevelChecker) Evaluate(profile *models.ClientProfile, regulation string) models.HighLevelCheck {
	criteria := map[string]bool{
		CriterionAUMThreshold:     !aumGatedRegulations[regulation] || profile.AUMUSD >= aumGateUSD,
		CriterionJurisdiction:     supportedJurisdictions[profile.Jurisdiction],
		CriterionEntityType:       eligibleEntityTypes[profile.EntityType],
		CriterionBusinessApproved: strings.Contains(strings.ToLower(profile.BusinessType), "investment"),
	}

	status := models.CheckStatusPassed
	for _, ok := range criteria {
		if !ok {
			status = models.CheckStatusFailed
			break
		}
	}

	now := time.Now()
	return models.HighLevelCheck{
		CheckID:        domain.NewCheckID(),
		RegulationName: regulation,
		Description:    fmt.Sprintf("High-level eligibility check for %s", regulation),
		Status:         status,
		Criteria:       criteria,
		CreatedAt:      now,
		CompletedAt:    &now,
	}
}

// EvaluateAll runs Evaluate for each regulation, preserving input order.
func (c *HighLevelChecker) EvaluateAll(profile *models.ClientProfile, regulations []string) []models.HighLevelCheck {
	out := make([]models.HighLevelCheck, 0, len(regulations))
	for _, regulation := range regulations {
		out = append(out, c.Evaluate(profile, regulation))
	}
	return out
}
