//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/naveenbxyz/iclm/internal/workflow/models"
	"github.com/naveenbxyz/iclm/pkg/sentinel"
	"github.com/naveenbxyz/iclm/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	ctx   context.Context
	redis *containers.RedisContainer
	store *Redis
}

func (s *RedisStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
	s.store = NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	workflow := models.NewWorkflow("CLIENT-001", time.Now().UTC())
	started := time.Now().UTC()
	workflow.Step(models.StepClientImport).Status = models.StepStatusCompleted
	workflow.Step(models.StepClientImport).StartedAt = &started
	workflow.ApplicableRegulations = []string{"MiFID II", "EMIR"}

	s.Require().NoError(s.store.Create(s.ctx, workflow))

	got, err := s.store.Get(s.ctx, workflow.WorkflowID)
	s.Require().NoError(err)
	s.Equal(workflow.WorkflowID, got.WorkflowID)
	s.Equal(workflow.ClientID, got.ClientID)
	s.Equal(models.StepStatusCompleted, got.Step(models.StepClientImport).Status)
	s.Equal([]string{"MiFID II", "EMIR"}, got.ApplicableRegulations)
	s.Len(got.Steps, len(models.StepOrder()))
}

func (s *RedisStoreSuite) TestGetUnknown() {
	_, err := s.store.Get(s.ctx, "missing")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestUpdate() {
	workflow := models.NewWorkflow("CLIENT-001", time.Now().UTC())
	s.Require().NoError(s.store.Create(s.ctx, workflow))

	workflow.Step(models.StepManualReview).Status = models.StepStatusRejected
	s.Require().NoError(s.store.Update(s.ctx, workflow))

	got, err := s.store.Get(s.ctx, workflow.WorkflowID)
	s.Require().NoError(err)
	s.Equal(models.StepStatusRejected, got.Step(models.StepManualReview).Status)
	s.Equal(models.WorkflowRejected, got.OverallStatus())

	s.Run("unknown workflow", func() {
		other := models.NewWorkflow("CLIENT-002", time.Now().UTC())
		s.Require().ErrorIs(s.store.Update(s.ctx, other), sentinel.ErrNotFound)
	})
}

func (s *RedisStoreSuite) TestListPreservesCreationOrder() {
	first := models.NewWorkflow("CLIENT-001", time.Now().UTC())
	second := models.NewWorkflow("CLIENT-002", time.Now().UTC())
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, second))

	workflows, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(workflows, 2)
	s.Equal(first.WorkflowID, workflows[0].WorkflowID)
	s.Equal(second.WorkflowID, workflows[1].WorkflowID)
}
