package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/naveenbxyz/iclm/internal/regulatory/checks"
	"github.com/naveenbxyz/iclm/internal/regulatory/classifier"
	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/internal/regulatory/rules"
	classificationstore "github.com/naveenbxyz/iclm/internal/regulatory/store/classification"
	clientstore "github.com/naveenbxyz/iclm/internal/regulatory/store/client"
	"github.com/naveenbxyz/iclm/internal/upstream"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ServiceSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func newTestService() *Service {
	registry := rules.Default()
	return New(
		clientstore.NewInMemory(),
		classificationstore.NewInMemory(),
		classifier.New(registry),
		checks.NewHighLevelChecker(),
		checks.NewDocumentValidator(upstream.StaticDocuments{}, upstream.StaticAnalyzer{}),
		checks.NewDataQualityChecker(upstream.StaticDataQuality{}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func testProfile() *models.ClientProfile {
	return &models.ClientProfile{
		ClientID:     "CLIENT-001",
		EntityName:   "Quantum Fund Ltd.",
		EntityType:   models.EntityHedgeFund,
		Jurisdiction: "EU",
		AUMUSD:       250_000_000,
		BusinessType: "investment management",
		Products: []models.ProductApproval{
			{ProductName: "OTC Swaps", ProductType: "derivatives"},
		},
	}
}

func (s *ServiceSuite) TestTriggerClassification() {
	svc := newTestService()

	classification, err := svc.TriggerClassification(s.ctx, testProfile())
	s.Require().NoError(err)

	s.Run("produces check records for every applicable regulation", func() {
		s.NotEmpty(classification.HighLevelChecks)
		s.Equal(len(classification.HighLevelChecks), len(classification.DocumentChecks),
			"one high-level and one document check per regulation")
		s.Equal(len(classification.HighLevelChecks)*len(upstream.MonitoredFields), len(classification.DQChecks))
	})

	s.Run("passes with the static collaborators", func() {
		s.Equal(models.CheckStatusPassed, classification.Status)
		s.InDelta(1.0, classification.Progress, 1e-9)
	})

	s.Run("stores the record for retrieval", func() {
		got, err := svc.GetClassification(s.ctx, classification.ClassificationID)
		s.Require().NoError(err)
		s.Equal(classification.ClassificationID, got.ClassificationID)
	})

	s.Run("stores the profile for name resolution", func() {
		s.Equal("Quantum Fund Ltd.", svc.ClientName(s.ctx, "CLIENT-001"))
		s.Empty(svc.ClientName(s.ctx, "CLIENT-404"))
	})
}

func (s *ServiceSuite) TestTriggerRejectsInvalidProfile() {
	svc := newTestService()

	profile := testProfile()
	profile.EntityType = "charity"
	_, err := svc.TriggerClassification(s.ctx, profile)
	s.Require().Error(err)
	s.True(pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func (s *ServiceSuite) TestGetUnknownClassification() {
	svc := newTestService()

	_, err := svc.GetClassification(s.ctx, "missing")
	s.Require().Error(err)
	s.True(pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func (s *ServiceSuite) TestListClassifications() {
	svc := newTestService()

	first, err := svc.TriggerClassification(s.ctx, testProfile())
	s.Require().NoError(err)

	second := testProfile()
	second.ClientID = "CLIENT-002"
	secondRecord, err := svc.TriggerClassification(s.ctx, second)
	s.Require().NoError(err)

	records, err := svc.ListClassifications(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(first.ClassificationID, records[0].ClassificationID, "creation order is preserved")
	s.Equal(secondRecord.ClassificationID, records[1].ClassificationID)
}

func (s *ServiceSuite) TestUpdateDocumentCheckNotes() {
	svc := newTestService()

	classification, err := svc.TriggerClassification(s.ctx, testProfile())
	s.Require().NoError(err)
	s.Require().NotEmpty(classification.DocumentChecks)
	checkID := classification.DocumentChecks[0].CheckID

	s.Run("persists reviewer notes", func() {
		updated, err := svc.UpdateDocumentCheckNotes(s.ctx, classification.ClassificationID, checkID, "verified against registry extract")
		s.Require().NoError(err)
		s.Equal("verified against registry extract", updated.ManualNotes)

		stored, err := svc.GetClassification(s.ctx, classification.ClassificationID)
		s.Require().NoError(err)
		s.Equal("verified against registry extract", stored.FindDocumentCheck(checkID).ManualNotes)
	})

	s.Run("rejects empty notes", func() {
		_, err := svc.UpdateDocumentCheckNotes(s.ctx, classification.ClassificationID, checkID, "   ")
		s.Require().Error(err)
		s.True(pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	})

	s.Run("unknown check id", func() {
		_, err := svc.UpdateDocumentCheckNotes(s.ctx, classification.ClassificationID, "missing", "notes")
		s.Require().Error(err)
		s.True(pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	})
}
