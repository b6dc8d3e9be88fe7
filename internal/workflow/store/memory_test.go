package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/naveenbxyz/iclm/internal/workflow/models"
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

func (s *MemoryStoreSuite) TestCreateAndGet() {
	store := NewInMemory()
	workflow := models.NewWorkflow("CLIENT-001", time.Now())

	s.Require().NoError(store.Create(s.ctx, workflow))

	got, err := store.Get(s.ctx, workflow.WorkflowID)
	s.Require().NoError(err)
	s.Equal(workflow.WorkflowID, got.WorkflowID)
	s.Equal(workflow.ClientID, got.ClientID)
}

func (s *MemoryStoreSuite) TestGetUnknown() {
	store := NewInMemory()
	_, err := store.Get(s.ctx, "missing")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdate() {
	store := NewInMemory()
	workflow := models.NewWorkflow("CLIENT-001", time.Now())
	s.Require().NoError(store.Create(s.ctx, workflow))

	workflow.Step(models.StepClientImport).Status = models.StepStatusCompleted
	s.Require().NoError(store.Update(s.ctx, workflow))

	got, err := store.Get(s.ctx, workflow.WorkflowID)
	s.Require().NoError(err)
	s.Equal(models.StepStatusCompleted, got.Step(models.StepClientImport).Status)

	s.Run("unknown workflow", func() {
		other := models.NewWorkflow("CLIENT-002", time.Now())
		s.Require().ErrorIs(store.Update(s.ctx, other), sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestListPreservesCreationOrder() {
	store := NewInMemory()
	first := models.NewWorkflow("CLIENT-001", time.Now())
	second := models.NewWorkflow("CLIENT-002", time.Now())
	s.Require().NoError(store.Create(s.ctx, first))
	s.Require().NoError(store.Create(s.ctx, second))

	workflows, err := store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(workflows, 2)
	s.Equal(first.WorkflowID, workflows[0].WorkflowID)
	s.Equal(second.WorkflowID, workflows[1].WorkflowID)
}

func (s *MemoryStoreSuite) TestReadsDoNotAliasStoredState() {
	store := NewInMemory()
	workflow := models.NewWorkflow("CLIENT-001", time.Now())
	s.Require().NoError(store.Create(s.ctx, workflow))

	// Mutating the caller's copy after Create must not leak into the store.
	workflow.Step(models.StepClientImport).Status = models.StepStatusFailed

	got, err := store.Get(s.ctx, workflow.WorkflowID)
	s.Require().NoError(err)
	s.Equal(models.StepStatusNotStarted, got.Step(models.StepClientImport).Status)

	// Nor may mutating a read copy affect later reads.
	got.Step(models.StepClientImport).Status = models.StepStatusCompleted
	again, err := store.Get(s.ctx, workflow.WorkflowID)
	s.Require().NoError(err)
	s.Equal(models.StepStatusNotStarted, again.Step(models.StepClientImport).Status)
}
