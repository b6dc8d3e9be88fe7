package checks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/internal/upstream"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

// stubDataQuality serves a fixed assessment; err takes precedence.
type stubDataQuality struct {
	assessment map[string]upstream.FieldQuality
	err        error
}

func (s stubDataQuality) Assess(context.Context, domain.ClientID, string) (map[string]upstream.FieldQuality, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.assessment, nil
}

func fullAssessment(score float64) map[string]upstream.FieldQuality {
	out := make(map[string]upstream.FieldQuality, len(upstream.MonitoredFields))
	for _, field := range upstream.MonitoredFields {
		out[field] = upstream.FieldQuality{Score: score}
	}
	return out
}

type DataQualitySuite struct {
	suite.Suite
	ctx context.Context
}

func (s *DataQualitySuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestDataQualitySuite(t *testing.T) {
	suite.Run(t, new(DataQualitySuite))
}

func (s *DataQualitySuite) TestAllFieldsPass() {
	checker := NewDataQualityChecker(stubDataQuality{assessment: fullAssessment(0.9)})

	checks, err := checker.Check(s.ctx, "CLIENT-001", "MiFID II")
	s.Require().NoError(err)
	s.Require().Len(checks, len(upstream.MonitoredFields))
	for i, check := range checks {
		s.Equal(upstream.MonitoredFields[i], check.FieldName, "catalog order is preserved")
		s.Equal(models.CheckStatusPassed, check.Status)
		s.NotNil(check.CompletedAt)
	}
}

func (s *DataQualitySuite) TestThresholdIsInclusive() {
	checker := NewDataQualityChecker(stubDataQuality{assessment: fullAssessment(0.8)})

	checks, err := checker.Check(s.ctx, "CLIENT-001", "EMIR")
	s.Require().NoError(err)
	for _, check := range checks {
		s.Equal(models.CheckStatusPassed, check.Status, "a score of exactly 0.8 passes")
	}
}

func (s *DataQualitySuite) TestLowScoreFailsWithCappedIssues() {
	assessment := fullAssessment(0.9)
	assessment["financial_data"] = upstream.FieldQuality{
		Score:  0.4,
		Issues: []string{"stale balance sheet", "unverified AUM figure", "missing auditor sign-off"},
	}
	checker := NewDataQualityChecker(stubDataQuality{assessment: assessment})

	checks, err := checker.Check(s.ctx, "CLIENT-001", "AIFMD")
	s.Require().NoError(err)

	var failing *models.DataQualityCheck
	for i := range checks {
		if checks[i].FieldName == "financial_data" {
			failing = &checks[i]
		} else {
			s.Equal(models.CheckStatusPassed, checks[i].Status)
		}
	}
	s.Require().NotNil(failing)
	s.Equal(models.CheckStatusFailed, failing.Status)
	s.InDelta(0.4, failing.Score, 1e-9)
	s.Len(failing.Issues, 2, "issues are capped at two per field")
}

func (s *DataQualitySuite) TestMissingFieldFails() {
	assessment := fullAssessment(0.9)
	delete(assessment, "regulatory_permissions")
	checker := NewDataQualityChecker(stubDataQuality{assessment: assessment})

	checks, err := checker.Check(s.ctx, "CLIENT-001", "CRS")
	s.Require().NoError(err)
	s.Len(checks, len(upstream.MonitoredFields), "absent fields still produce a check")

	for _, check := range checks {
		if check.FieldName == "regulatory_permissions" {
			s.Equal(models.CheckStatusFailed, check.Status)
			s.Equal([]string{"field not assessed by data quality service"}, check.Issues)
		}
	}
}

func (s *DataQualitySuite) TestServiceFailureIsDependencyError() {
	checker := NewDataQualityChecker(stubDataQuality{err: errors.New("dq platform timeout")})

	_, err := checker.Check(s.ctx, "CLIENT-001", "GDPR")
	s.Require().Error(err)
	s.True(pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func (s *DataQualitySuite) TestCheckAllGroupsByRegulation() {
	checker := NewDataQualityChecker(stubDataQuality{assessment: fullAssessment(0.9)})

	regulations := []string{"MiFID II", "EMIR"}
	checks, err := checker.CheckAll(s.ctx, "CLIENT-001", regulations)
	s.Require().NoError(err)
	s.Require().Len(checks, 2*len(upstream.MonitoredFields))

	for i, check := range checks {
		s.Equal(regulations[i/len(upstream.MonitoredFields)], check.RegulationName)
		s.Equal(upstream.MonitoredFields[i%len(upstream.MonitoredFields)], check.FieldName)
	}
}
