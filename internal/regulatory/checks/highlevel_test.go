package checks

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
)

type HighLevelSuite struct {
	suite.Suite
	checker *HighLevelChecker
}

func (s *HighLevelSuite) SetupSuite() {
	s.checker = NewHighLevelChecker()
}

func TestHighLevelSuite(t *testing.T) {
	suite.Run(t, new(HighLevelSuite))
}

func eligibleProfile() *models.ClientProfile {
	return &models.ClientProfile{
		ClientID:     "CLIENT-001",
		EntityName:   "Quantum Fund Ltd.",
		EntityType:   models.EntityHedgeFund,
		Jurisdiction: "EU",
		AUMUSD:       250_000_000,
		BusinessType: "investment management",
	}
}

func (s *HighLevelSuite) TestAllCriteriaPass() {
	check := s.checker.Evaluate(eligibleProfile(), "MiFID II")

	s.Equal(models.CheckStatusPassed, check.Status)
	s.Equal("MiFID II", check.RegulationName)
	s.Require().NotNil(check.CompletedAt, "high-level checks are terminal on creation")
	s.Len(check.Criteria, 4)
	for name, ok := range check.Criteria {
		s.True(ok, "criterion %s", name)
	}
}

func (s *HighLevelSuite) TestFailingCriteria() {
	s.Run("unsupported jurisdiction", func() {
		profile := eligibleProfile()
		profile.Jurisdiction = "KY"
		check := s.checker.Evaluate(profile, "MiFID II")
		s.Equal(models.CheckStatusFailed, check.Status)
		s.False(check.Criteria[CriterionJurisdiction])
		s.True(check.Criteria[CriterionEntityType])
	})

	s.Run("ineligible entity type", func() {
		profile := eligibleProfile()
		profile.EntityType = models.EntityCorporate
		check := s.checker.Evaluate(profile, "AML/KYC")
		s.Equal(models.CheckStatusFailed, check.Status)
		s.False(check.Criteria[CriterionEntityType])
	})

	s.Run("business type without investment activity", func() {
		profile := eligibleProfile()
		profile.BusinessType = "commodity trading"
		check := s.checker.Evaluate(profile, "EMIR")
		s.Equal(models.CheckStatusFailed, check.Status)
		s.False(check.Criteria[CriterionBusinessApproved])
	})
}

func (s *HighLevelSuite) TestAUMGateAppliesOnlyToGatedRegulations() {
	profile := eligibleProfile()
	profile.AUMUSD = 50_000_000

	gated := s.checker.Evaluate(profile, "AIFMD")
	s.Equal(models.CheckStatusFailed, gated.Status)
	s.False(gated.Criteria[CriterionAUMThreshold])

	ungated := s.checker.Evaluate(profile, "MiFID II")
	s.True(ungated.Criteria[CriterionAUMThreshold], "non-gated regulations ignore AUM")
	s.Equal(models.CheckStatusPassed, ungated.Status)
}

func (s *HighLevelSuite) TestEvaluateAllPreservesOrder() {
	regulations := []string{"MiFID II", "EMIR", "AML/KYC"}
	checks := s.checker.EvaluateAll(eligibleProfile(), regulations)

	s.Require().Len(checks, 3)
	for i, check := range checks {
		s.Equal(regulations[i], check.RegulationName)
	}
}
