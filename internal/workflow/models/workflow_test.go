package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	regmodels "github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
)

type WorkflowSuite struct {
	suite.Suite
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) TestNewWorkflow() {
	now := time.Now()
	workflow := NewWorkflow("CLIENT-001", now)

	s.NotEmpty(workflow.WorkflowID)
	s.Len(workflow.Steps, len(StepOrder()))
	for _, name := range StepOrder() {
		step := workflow.Step(name)
		s.Require().NotNil(step)
		s.Equal(StepStatusNotStarted, step.Status)
	}
	s.Nil(workflow.Step("background_check"))
	s.Equal(now, workflow.CreatedAt)
}

func (s *WorkflowSuite) TestOverallStatus() {
	s.Run("fresh workflow is not started", func() {
		workflow := NewWorkflow("CLIENT-001", time.Now())
		s.Equal(WorkflowNotStarted, workflow.OverallStatus())
		s.False(workflow.IsTerminal())
	})

	s.Run("a failed step alone does not start the workflow", func() {
		workflow := NewWorkflow("CLIENT-001", time.Now())
		workflow.Step(StepClientImport).Status = StepStatusFailed
		s.Equal(WorkflowNotStarted, workflow.OverallStatus())
	})

	s.Run("any active step makes it in progress", func() {
		workflow := NewWorkflow("CLIENT-001", time.Now())
		workflow.Step(StepClientImport).Status = StepStatusCompleted
		s.Equal(WorkflowInProgress, workflow.OverallStatus())
		s.False(workflow.IsTerminal())
	})

	s.Run("rejected review is terminal", func() {
		workflow := NewWorkflow("CLIENT-001", time.Now())
		workflow.Step(StepClientImport).Status = StepStatusCompleted
		workflow.Step(StepManualReview).Status = StepStatusRejected
		s.Equal(WorkflowRejected, workflow.OverallStatus())
		s.True(workflow.IsTerminal())
	})

	s.Run("completed communication is terminal", func() {
		workflow := NewWorkflow("CLIENT-001", time.Now())
		for _, name := range StepOrder() {
			workflow.Step(name).Status = StepStatusCompleted
		}
		s.Equal(WorkflowCompleted, workflow.OverallStatus())
		s.True(workflow.IsTerminal())
	})

	s.Run("rejection wins over completed communication", func() {
		workflow := NewWorkflow("CLIENT-001", time.Now())
		workflow.Step(StepClientCommunication).Status = StepStatusCompleted
		workflow.Step(StepManualReview).Status = StepStatusRejected
		s.Equal(WorkflowRejected, workflow.OverallStatus())
	})
}

func (s *WorkflowSuite) TestProgress() {
	workflow := NewWorkflow("CLIENT-001", time.Now())
	s.Zero(workflow.Progress())

	workflow.Step(StepClientImport).Status = StepStatusCompleted
	s.InDelta(0.2, workflow.Progress(), 1e-9)

	workflow.Step(StepRegulationClassification).Status = StepStatusFailed
	s.InDelta(0.2, workflow.Progress(), 1e-9, "failed is not a final status")

	workflow.Step(StepManualReview).Status = StepStatusApproved
	s.InDelta(0.4, workflow.Progress(), 1e-9)

	for _, name := range StepOrder() {
		workflow.Step(name).Status = StepStatusCompleted
	}
	s.InDelta(1.0, workflow.Progress(), 1e-9)
}

func (s *WorkflowSuite) TestStepStatusIsFinal() {
	s.True(StepStatusCompleted.IsFinal())
	s.True(StepStatusApproved.IsFinal())
	s.True(StepStatusRejected.IsFinal())
	s.False(StepStatusFailed.IsFinal(), "failed steps may be retried")
	s.False(StepStatusManualReview.IsFinal())
	s.False(StepStatusInProgress.IsFinal())
	s.False(StepStatusNotStarted.IsFinal())
}

func (s *WorkflowSuite) TestJSONRoundTrip() {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	started := created.Add(time.Minute)
	workflow := NewWorkflow("CLIENT-001", created)
	workflow.Profile = &regmodels.ClientProfile{ClientID: "CLIENT-001", EntityName: "Quantum Fund Ltd."}
	workflow.ApplicableRegulations = []string{"MiFID II", "EMIR"}
	workflow.Step(StepClientImport).Status = StepStatusCompleted
	workflow.Step(StepClientImport).StartedAt = &started
	workflow.Step(StepClientImport).Result = &StepResult{
		Import: &ImportResult{EntityName: "Quantum Fund Ltd.", ProductCount: 2},
	}
	workflow.Communications = []ClientCommunication{{
		CommunicationID: domain.NewCommunicationID(),
		ClientID:        "CLIENT-001",
		Type:            "regulatory_summary",
		Subject:         "Regulatory requirements for your onboarding",
		Body:            "MiFID II, EMIR",
		Status:          CommunicationSent,
		SentAt:          started,
	}}

	raw, err := json.Marshal(workflow)
	s.Require().NoError(err)

	var decoded RegulatoryWorkflow
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	s.Equal(workflow, &decoded)
}

func (s *WorkflowSuite) TestCloneIsolation() {
	workflow := NewWorkflow("CLIENT-001", time.Now())
	workflow.Profile = &regmodels.ClientProfile{ClientID: "CLIENT-001", EntityName: "Quantum Fund Ltd."}
	workflow.ApplicableRegulations = []string{"MiFID II"}
	started := time.Now()
	workflow.Step(StepClientImport).Status = StepStatusCompleted
	workflow.Step(StepClientImport).StartedAt = &started
	workflow.Step(StepClientImport).Result = &StepResult{
		Import: &ImportResult{EntityName: "Quantum Fund Ltd."},
	}

	clone := workflow.Clone()
	clone.Profile.EntityName = "mutated"
	clone.ApplicableRegulations[0] = "mutated"
	clone.Step(StepClientImport).Status = StepStatusFailed
	clone.Step(StepClientImport).Result.Import.EntityName = "mutated"

	s.Equal("Quantum Fund Ltd.", workflow.Profile.EntityName)
	s.Equal("MiFID II", workflow.ApplicableRegulations[0])
	s.Equal(StepStatusCompleted, workflow.Step(StepClientImport).Status)
	s.Equal("Quantum Fund Ltd.", workflow.Step(StepClientImport).Result.Import.EntityName)
}
