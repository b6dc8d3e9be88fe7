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

// stubFetcher serves canned documents, failing for regulations in failOn.
type stubFetcher struct {
	failOn map[string]bool
}

func (f stubFetcher) Fetch(_ context.Context, clientID domain.ClientID, regulation string) (*upstream.Document, error) {
	if f.failOn[regulation] {
		return nil, errors.New("document service unavailable")
	}
	return &upstream.Document{
		DocumentID:   domain.DocumentID("DOC-" + string(clientID) + "-" + regulation),
		DocumentType: "regulatory_compliance_statement",
		Content:      "compliance statement for " + regulation,
	}, nil
}

// stubAnalyzer flags regulations in nonCompliant, approving the rest.
type stubAnalyzer struct {
	nonCompliant map[string]bool
}

func (a stubAnalyzer) Analyze(_ context.Context, _ string, regulation string) (*upstream.Analysis, error) {
	if a.nonCompliant[regulation] {
		return &upstream.Analysis{
			IsCompliant: false,
			Confidence:  0.55,
			Issues:      []string{"missing authorized signature"},
		}, nil
	}
	return &upstream.Analysis{IsCompliant: true, Confidence: 0.95}, nil
}

type DocumentValidatorSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *DocumentValidatorSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestDocumentValidatorSuite(t *testing.T) {
	suite.Run(t, new(DocumentValidatorSuite))
}

func (s *DocumentValidatorSuite) TestCompliantDocument() {
	validator := NewDocumentValidator(stubFetcher{}, stubAnalyzer{})

	check, err := validator.Validate(s.ctx, "CLIENT-001", "MiFID II")
	s.Require().NoError(err)

	s.Equal(models.CheckStatusPassed, check.AIValidationStatus)
	s.Equal(models.CheckStatusPassed, check.ManualReviewStatus)
	s.NotNil(check.CompletedAt)
	s.InDelta(0.95, check.AIConfidence, 1e-9)
	s.Equal("MiFID II", check.RegulationName)
	s.NotEmpty(check.DocumentID)
}

func (s *DocumentValidatorSuite) TestNonCompliantDocumentParksOnReviewer() {
	validator := NewDocumentValidator(stubFetcher{}, stubAnalyzer{nonCompliant: map[string]bool{"EMIR": true}})

	check, err := validator.Validate(s.ctx, "CLIENT-001", "EMIR")
	s.Require().NoError(err)

	s.Equal(models.CheckStatusManualReview, check.AIValidationStatus)
	s.Equal(models.CheckStatusPending, check.ManualReviewStatus)
	s.Nil(check.CompletedAt, "completion is stamped by the reviewer, not the analyzer")
	s.Contains(check.AIFeedback, "manual review")
	s.Contains(check.AIFeedback, "missing authorized signature")
}

func (s *DocumentValidatorSuite) TestFetchFailureIsDependencyError() {
	validator := NewDocumentValidator(stubFetcher{failOn: map[string]bool{"GDPR": true}}, stubAnalyzer{})

	_, err := validator.Validate(s.ctx, "CLIENT-001", "GDPR")
	s.Require().Error(err)
	s.True(pkgerrors.HasCode(err, pkgerrors.CodeDependency))
	s.Contains(err.Error(), "GDPR")
}

func (s *DocumentValidatorSuite) TestValidateAllPreservesOrder() {
	validator := NewDocumentValidator(stubFetcher{}, stubAnalyzer{nonCompliant: map[string]bool{"CRS": true}})

	regulations := []string{"MiFID II", "CRS", "AML/KYC", "GDPR"}
	checks, err := validator.ValidateAll(s.ctx, "CLIENT-001", regulations)
	s.Require().NoError(err)
	s.Require().Len(checks, len(regulations))
	for i, check := range checks {
		s.Equal(regulations[i], check.RegulationName)
	}
	s.Equal(models.CheckStatusPending, checks[1].ManualReviewStatus)
	s.Equal(models.CheckStatusPassed, checks[0].ManualReviewStatus)
}

func (s *DocumentValidatorSuite) TestValidateAllPropagatesFirstFailure() {
	validator := NewDocumentValidator(stubFetcher{failOn: map[string]bool{"EMIR": true}}, stubAnalyzer{})

	checks, err := validator.ValidateAll(s.ctx, "CLIENT-001", []string{"MiFID II", "EMIR"})
	s.Require().Error(err)
	s.Nil(checks)
	s.True(pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}
