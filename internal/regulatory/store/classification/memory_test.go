package classification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	"github.com/naveenbxyz/iclm/pkg/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *MemoryStoreSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func record() *models.RegulatoryClassification {
	return &models.RegulatoryClassification{
		ClassificationID: domain.NewClassificationID(),
		ClientID:         "CLIENT-001",
		Status:           models.CheckStatusManualReview,
		DocumentChecks: []models.DocumentCheck{{
			CheckID:            domain.NewCheckID(),
			RegulationName:     "MiFID II",
			AIValidationStatus: models.CheckStatusManualReview,
			ManualReviewStatus: models.CheckStatusPending,
		}},
		CreatedAt: time.Now(),
	}
}

func (s *MemoryStoreSuite) TestCreateAndGet() {
	store := NewInMemory()
	rec := record()
	s.Require().NoError(store.Create(s.ctx, rec))

	got, err := store.Get(s.ctx, rec.ClassificationID)
	s.Require().NoError(err)
	s.Equal(rec.ClassificationID, got.ClassificationID)
	s.Len(got.DocumentChecks, 1)

	_, err = store.Get(s.ctx, "missing")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdateAppliesManualNotes() {
	store := NewInMemory()
	rec := record()
	s.Require().NoError(store.Create(s.ctx, rec))

	rec.DocumentChecks[0].ManualNotes = "verified with registry extract"
	s.Require().NoError(store.Update(s.ctx, rec))

	got, err := store.Get(s.ctx, rec.ClassificationID)
	s.Require().NoError(err)
	s.Equal("verified with registry extract", got.DocumentChecks[0].ManualNotes)

	s.Require().ErrorIs(store.Update(s.ctx, record()), sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestListPreservesCreationOrder() {
	store := NewInMemory()
	first, second := record(), record()
	s.Require().NoError(store.Create(s.ctx, first))
	s.Require().NoError(store.Create(s.ctx, second))

	records, err := store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(first.ClassificationID, records[0].ClassificationID)
	s.Equal(second.ClassificationID, records[1].ClassificationID)
}

func (s *MemoryStoreSuite) TestReadsDoNotAliasStoredState() {
	store := NewInMemory()
	rec := record()
	s.Require().NoError(store.Create(s.ctx, rec))

	got, err := store.Get(s.ctx, rec.ClassificationID)
	s.Require().NoError(err)
	got.DocumentChecks[0].ManualNotes = "mutated"

	again, err := store.Get(s.ctx, rec.ClassificationID)
	s.Require().NoError(err)
	s.Empty(again.DocumentChecks[0].ManualNotes)
}
