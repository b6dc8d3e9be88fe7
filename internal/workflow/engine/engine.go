// Package engine implements the workflow state machine. Steps are advanced
// explicitly by the caller; the engine enforces data dependencies, serializes
// concurrent advances of the same (workflow, step) pair, and converts
// collaborator failures into failed steps without failing the workflow.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/naveenbxyz/iclm/internal/audit"
	"github.com/naveenbxyz/iclm/internal/platform/metrics"
	"github.com/naveenbxyz/iclm/internal/regulatory/checks"
	"github.com/naveenbxyz/iclm/internal/regulatory/classifier"
	regmodels "github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/internal/regulatory/rules"
	"github.com/naveenbxyz/iclm/internal/upstream"
	"github.com/naveenbxyz/iclm/internal/workflow/comms"
	"github.com/naveenbxyz/iclm/internal/workflow/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
	"github.com/naveenbxyz/iclm/pkg/sentinel"
)

// WorkflowStore persists workflow aggregates.
type WorkflowStore interface {
	Create(ctx context.Context, workflow *models.RegulatoryWorkflow) error
	Update(ctx context.Context, workflow *models.RegulatoryWorkflow) error
	Get(ctx context.Context, id domain.WorkflowID) (*models.RegulatoryWorkflow, error)
	List(ctx context.Context) ([]*models.RegulatoryWorkflow, error)
}

// ClientStore records imported client profiles.
type ClientStore interface {
	Put(ctx context.Context, profile *regmodels.ClientProfile) error
}

// ClassificationStore records classifications produced by workflow runs.
type ClassificationStore interface {
	Create(ctx context.Context, record *regmodels.RegulatoryClassification) error
	Update(ctx context.Context, record *regmodels.RegulatoryClassification) error
}

// Deps bundles the engine's required collaborators.
type Deps struct {
	Workflows       WorkflowStore
	Clients         ClientStore
	Classifications ClassificationStore
	Registry        upstream.ClientRegistry
	Completeness    upstream.DocumentCompletenessService
	Rules           *rules.Registry
	Classifier      *classifier.Classifier
	HighLevel       *checks.HighLevelChecker
	Documents       *checks.DocumentValidator
	DataQuality     *checks.DataQualityChecker
}

// AdvanceRequest carries caller input for a step advance. Decision and Notes
// are consulted only by the manual_review step.
type AdvanceRequest struct {
	Decision models.ReviewDecision
	Notes    string
}

type stepKey struct {
	workflow domain.WorkflowID
	step     models.StepName
}

// Engine is the workflow state machine.
type Engine struct {
	deps      Deps
	generator *comms.Generator

	logger      *slog.Logger
	metrics     *metrics.Metrics
	publisher   audit.Publisher
	stepTimeout time.Duration
	tracer      trace.Tracer

	mu       sync.Mutex
	inflight map[stepKey]struct{}
}

// Option configures optional engine dependencies.
type Option func(e *Engine)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithAuditPublisher attaches an audit event publisher.
func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(e *Engine) { e.publisher = publisher }
}

// WithStepTimeout bounds each step execution; zero leaves only the caller's
// deadline in force.
func WithStepTimeout(timeout time.Duration) Option {
	return func(e *Engine) { e.stepTimeout = timeout }
}

// New constructs an Engine.
func New(deps Deps, opts ...Option) *Engine {
	e := &Engine{
		deps:      deps,
		generator: comms.New(),
		tracer:    otel.Tracer("github.com/naveenbxyz/iclm/internal/workflow/engine"),
		inflight:  make(map[stepKey]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateWorkflow starts a new onboarding attempt for a client. All five steps
// exist immediately, not started.
func (e *Engine) CreateWorkflow(ctx context.Context, clientID domain.ClientID) (*models.RegulatoryWorkflow, error) {
	if clientID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client_id is required")
	}
	workflow := models.NewWorkflow(clientID, time.Now())
	if err := e.deps.Workflows.Create(ctx, workflow); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to create workflow")
	}

	e.log(ctx, "workflow created", "workflow_id", workflow.WorkflowID, "client_id", clientID)
	e.emit(ctx, audit.Event{
		Type:       audit.EventWorkflowCreated,
		ClientID:   clientID,
		WorkflowID: workflow.WorkflowID,
		OccurredAt: time.Now(),
	})
	if e.metrics != nil {
		e.metrics.WorkflowsCreated.Inc()
	}
	return workflow, nil
}

// GetWorkflow returns a snapshot of one workflow.
func (e *Engine) GetWorkflow(ctx context.Context, id domain.WorkflowID) (*models.RegulatoryWorkflow, error) {
	workflow, err := e.deps.Workflows.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "workflow %s not found", id)
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to load workflow")
	}
	return workflow, nil
}

// ListWorkflows returns snapshots of all workflows in creation order.
func (e *Engine) ListWorkflows(ctx context.Context) ([]*models.RegulatoryWorkflow, error) {
	workflows, err := e.deps.Workflows.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to list workflows")
	}
	return workflows, nil
}

// AdvanceStep executes one named step of a workflow.
//
// Precondition, validation, not-found and terminal-state violations are
// rejected before any state mutation. Execution failures (collaborator
// errors, timeouts) transition the step to failed — with the error recorded
// and the returned step reflecting it — while the workflow itself stays
// resumable. The returned error is non-nil in both cases; callers distinguish
// them by whether a step is returned alongside.
func (e *Engine) AdvanceStep(ctx context.Context, workflowID domain.WorkflowID, stepName models.StepName, req AdvanceRequest) (*models.WorkflowStep, error) {
	if !stepName.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown workflow step %q", stepName)
	}

	// At-most-one advance in flight per (workflow, step). Concurrent
	// duplicates are rejected rather than queued; the loser re-invokes.
	key := stepKey{workflow: workflowID, step: stepName}
	if !e.acquire(key) {
		return nil, pkgerrors.Newf(pkgerrors.CodePrecondition, "step %s is already in flight", stepName)
	}
	defer e.release(key)

	workflow, err := e.GetWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if workflow.IsTerminal() {
		return nil, pkgerrors.Newf(pkgerrors.CodeTerminalState,
			"workflow %s is %s and cannot be advanced", workflowID, workflow.OverallStatus())
	}

	step := workflow.Step(stepName)
	if step.Status.IsFinal() {
		return nil, pkgerrors.Newf(pkgerrors.CodePrecondition, "step %s is already %s", stepName, step.Status)
	}
	if err := e.checkPreconditions(workflow, stepName, req); err != nil {
		return nil, err
	}

	// Mark in progress and persist before the (potentially slow) execution
	// so snapshot readers observe the transition. No lock is held across
	// collaborator calls; the in-flight marker alone guards the pair.
	started := time.Now()
	step.Status = models.StepStatusInProgress
	step.StartedAt = &started
	step.CompletedAt = nil
	step.Result = nil
	step.Error = ""
	workflow.UpdatedAt = started
	if err := e.deps.Workflows.Update(ctx, workflow); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to persist step start")
	}

	execCtx := ctx
	var cancel context.CancelFunc
	if e.stepTimeout > 0 {
		execCtx, cancel = context.WithTimeout(ctx, e.stepTimeout)
		defer cancel()
	}

	execCtx, span := e.tracer.Start(execCtx, "workflow.advance_step",
		trace.WithAttributes(
			attribute.String("workflow.id", workflowID.String()),
			attribute.String("workflow.step", string(stepName)),
		))
	execErr := e.execute(execCtx, workflow, step, req)
	if execErr != nil && errors.Is(execErr, context.DeadlineExceeded) {
		execErr = pkgerrors.Wrap(execErr, pkgerrors.CodeTimeout, "step "+string(stepName)+" timed out")
	}

	completed := time.Now()
	step.CompletedAt = &completed
	workflow.UpdatedAt = completed
	if execErr != nil {
		step.Status = models.StepStatusFailed
		step.Error = pkgerrors.MessageOf(execErr)
		span.RecordError(execErr)
		span.SetStatus(otelcodes.Error, step.Error)
	}
	span.End()

	// Persist detached from cancellation: neither the step timeout nor an
	// expired caller deadline may prevent the failed status from being
	// recorded. A step must never be left in_progress after a timeout.
	if err := e.deps.Workflows.Update(context.WithoutCancel(ctx), workflow); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to persist step result")
	}

	e.observeStep(ctx, workflow, step, started)
	if execErr != nil {
		return step.Clone(), execErr
	}
	return step.Clone(), nil
}

// checkPreconditions enforces step data dependencies before any mutation.
func (e *Engine) checkPreconditions(workflow *models.RegulatoryWorkflow, stepName models.StepName, req AdvanceRequest) error {
	switch stepName {
	case models.StepRegulationClassification:
		if workflow.Profile == nil {
			return pkgerrors.New(pkgerrors.CodePrecondition,
				"regulation_classification requires a completed client_import")
		}
	case models.StepDocumentValidation:
		if len(workflow.ApplicableRegulations) == 0 {
			return pkgerrors.New(pkgerrors.CodePrecondition,
				"document_validation requires applicable regulations from regulation_classification")
		}
	case models.StepManualReview:
		review := workflow.Step(models.StepManualReview)
		validation := workflow.Step(models.StepDocumentValidation)
		armed := review.Status == models.StepStatusInProgress ||
			(validation != nil && validation.Status == models.StepStatusManualReview)
		if !armed {
			return pkgerrors.New(pkgerrors.CodePrecondition, "no manual review is pending")
		}
		if !req.Decision.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation,
				"manual_review requires a decision of approved or rejected")
		}
	case models.StepClientCommunication:
		if workflow.Classification == nil {
			return pkgerrors.New(pkgerrors.CodePrecondition,
				"client_communication requires a completed classification")
		}
		if review := workflow.Step(models.StepManualReview); review.Status == models.StepStatusInProgress {
			return pkgerrors.New(pkgerrors.CodePrecondition,
				"client_communication requires the pending manual review to be decided")
		}
	}
	return nil
}

func (e *Engine) acquire(key stepKey) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, taken := e.inflight[key]; taken {
		return false
	}
	e.inflight[key] = struct{}{}
	return true
}

func (e *Engine) release(key stepKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, key)
}

func (e *Engine) observeStep(ctx context.Context, workflow *models.RegulatoryWorkflow, step *models.WorkflowStep, started time.Time) {
	if e.metrics != nil {
		e.metrics.WorkflowStepsAdvanced.WithLabelValues(string(step.Name), string(step.Status)).Inc()
		e.metrics.WorkflowStepDuration.WithLabelValues(string(step.Name)).Observe(time.Since(started).Seconds())
	}
	e.log(ctx, "workflow step advanced",
		"workflow_id", workflow.WorkflowID,
		"client_id", workflow.ClientID,
		"step", step.Name,
		"status", step.Status,
		"duration_ms", time.Since(started).Milliseconds(),
		"error", step.Error,
	)
	e.emit(ctx, audit.Event{
		Type:       audit.EventStepAdvanced,
		ClientID:   workflow.ClientID,
		WorkflowID: workflow.WorkflowID,
		Step:       string(step.Name),
		Detail:     string(step.Status),
		OccurredAt: time.Now(),
	})
}

func (e *Engine) log(ctx context.Context, msg string, args ...any) {
	if e.logger != nil {
		e.logger.InfoContext(ctx, msg, args...)
	}
}

func (e *Engine) emit(ctx context.Context, event audit.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Emit(ctx, event); err != nil && e.logger != nil {
		e.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}
