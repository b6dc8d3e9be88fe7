// Package handler exposes the onboarding workflow HTTP API.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naveenbxyz/iclm/internal/workflow/engine"
	"github.com/naveenbxyz/iclm/internal/workflow/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
	"github.com/naveenbxyz/iclm/pkg/httputil"
)

// Service defines the workflow operations the handler exposes.
type Service interface {
	CreateWorkflow(ctx context.Context, clientID domain.ClientID) (*models.RegulatoryWorkflow, error)
	GetWorkflow(ctx context.Context, id domain.WorkflowID) (*models.RegulatoryWorkflow, error)
	ListWorkflows(ctx context.Context) ([]*models.RegulatoryWorkflow, error)
	AdvanceStep(ctx context.Context, workflowID domain.WorkflowID, stepName models.StepName, req engine.AdvanceRequest) (*models.WorkflowStep, error)
}

// Handler handles workflow endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a workflow Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the workflow routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/workflows", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{workflowID}", h.handleGet)
		r.Post("/{workflowID}/steps/{stepName}", h.handleAdvanceStep)
	})
}

// handleCreate starts a new onboarding workflow for a client.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createWorkflowRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	workflow, err := h.service.CreateWorkflow(ctx, domain.ClientID(req.ClientID))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toWorkflowDetail(workflow))
}

// handleList returns one summary per workflow, creation order.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.service.ListWorkflows(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summaries := make([]workflowSummary, 0, len(workflows))
	for _, workflow := range workflows {
		summaries = append(summaries, toWorkflowSummary(workflow))
	}
	httputil.WriteJSON(w, http.StatusOK, listWorkflowsResponse{Workflows: summaries})
}

// handleGet returns the full state of one workflow, steps in canonical order.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := domain.WorkflowID(chi.URLParam(r, "workflowID"))
	workflow, err := h.service.GetWorkflow(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toWorkflowDetail(workflow))
}

// handleAdvanceStep executes one named step. A step that ran and failed is a
// successful advance from the API's perspective: the response carries the
// failed step with its recorded error. Only advances rejected before any
// mutation map to error statuses.
func (h *Handler) handleAdvanceStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	workflowID := domain.WorkflowID(chi.URLParam(r, "workflowID"))
	stepName := models.StepName(chi.URLParam(r, "stepName"))

	var req advanceStepRequest
	if r.ContentLength > 0 {
		if err := httputil.Decode(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	step, err := h.service.AdvanceStep(ctx, workflowID, stepName, engine.AdvanceRequest{
		Decision: models.ReviewDecision(req.Decision),
		Notes:    req.Notes,
	})
	if err != nil && step == nil {
		httputil.WriteError(w, err)
		return
	}

	resp := advanceStepResponse{WorkflowID: workflowID, Step: step}
	if err != nil {
		resp.ErrorKind = string(pkgerrors.CodeOf(err))
		resp.ErrorMessage = pkgerrors.MessageOf(err)
		h.logger.WarnContext(ctx, "workflow step failed",
			"workflow_id", workflowID, "step", stepName, "error", err)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
