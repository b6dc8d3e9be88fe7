package handler

import (
	"time"

	regmodels "github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/internal/workflow/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
)

type createWorkflowRequest struct {
	ClientID string `json:"client_id"`
}

type advanceStepRequest struct {
	Decision string `json:"decision,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type workflowSummary struct {
	WorkflowID    domain.WorkflowID     `json:"workflow_id"`
	ClientID      domain.ClientID       `json:"client_id"`
	EntityName    string                `json:"entity_name,omitempty"`
	OverallStatus models.WorkflowStatus `json:"overall_status"`
	Progress      float64               `json:"progress"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type listWorkflowsResponse struct {
	Workflows []workflowSummary `json:"workflows"`
}

// workflowDetail presents steps as an ordered list rather than the aggregate's
// internal map, so clients see the canonical sequence.
type workflowDetail struct {
	WorkflowID            domain.WorkflowID                   `json:"workflow_id"`
	ClientID              domain.ClientID                     `json:"client_id"`
	Profile               *regmodels.ClientProfile            `json:"profile,omitempty"`
	ApplicableRegulations []string                            `json:"applicable_regulations,omitempty"`
	OverallStatus         models.WorkflowStatus               `json:"overall_status"`
	Progress              float64                             `json:"progress"`
	Steps                 []*models.WorkflowStep              `json:"steps"`
	Classification        *regmodels.RegulatoryClassification `json:"classification,omitempty"`
	Communications        []models.ClientCommunication        `json:"communications,omitempty"`
	CreatedAt             time.Time                           `json:"created_at"`
	UpdatedAt             time.Time                           `json:"updated_at"`
}

type advanceStepResponse struct {
	WorkflowID   domain.WorkflowID    `json:"workflow_id"`
	Step         *models.WorkflowStep `json:"step"`
	ErrorKind    string               `json:"error_kind,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

func toWorkflowSummary(workflow *models.RegulatoryWorkflow) workflowSummary {
	summary := workflowSummary{
		WorkflowID:    workflow.WorkflowID,
		ClientID:      workflow.ClientID,
		OverallStatus: workflow.OverallStatus(),
		Progress:      workflow.Progress(),
		CreatedAt:     workflow.CreatedAt,
		UpdatedAt:     workflow.UpdatedAt,
	}
	if workflow.Profile != nil {
		summary.EntityName = workflow.Profile.EntityName
	}
	return summary
}

func toWorkflowDetail(workflow *models.RegulatoryWorkflow) workflowDetail {
	steps := make([]*models.WorkflowStep, 0, len(workflow.Steps))
	for _, name := range models.StepOrder() {
		if step := workflow.Step(name); step != nil {
			steps = append(steps, step)
		}
	}
	return workflowDetail{
		WorkflowID:            workflow.WorkflowID,
		ClientID:              workflow.ClientID,
		Profile:               workflow.Profile,
		ApplicableRegulations: workflow.ApplicableRegulations,
		OverallStatus:         workflow.OverallStatus(),
		Progress:              workflow.Progress(),
		Steps:                 steps,
		Classification:        workflow.Classification,
		Communications:        workflow.Communications,
		CreatedAt:             workflow.CreatedAt,
		UpdatedAt:             workflow.UpdatedAt,
	}
}
