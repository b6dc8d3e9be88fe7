package engine

import (
	"context"
	"time"

	"github.com/naveenbxyz/iclm/internal/audit"
	"github.com/naveenbxyz/iclm/internal/regulatory/aggregate"
	regmodels "github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/internal/workflow/models"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

// classificationBasis records how regulations were selected. Rule-based
// evaluation is the only mechanism.
const classificationBasis = "rule_based"

// execute dispatches to the step's executor. Executors mutate workflow and
// step in place and set the step's outcome status; the caller stamps
// completion and persists.
func (e *Engine) execute(ctx context.Context, workflow *models.RegulatoryWorkflow, step *models.WorkflowStep, req AdvanceRequest) error {
	switch step.Name {
	case models.StepClientImport:
		return e.executeClientImport(ctx, workflow, step)
	case models.StepRegulationClassification:
		return e.executeClassification(ctx, workflow, step)
	case models.StepDocumentValidation:
		return e.executeDocumentValidation(ctx, workflow, step)
	case models.StepManualReview:
		return e.executeManualReview(ctx, workflow, step, req)
	case models.StepClientCommunication:
		return e.executeClientCommunication(ctx, workflow, step)
	default:
		return pkgerrors.Newf(pkgerrors.CodeInternal, "no executor for step %q", step.Name)
	}
}

// executeClientImport resolves the client in the upstream registry and
// snapshots the profile into the workflow. An unknown client fails the step
// with the offending id in the error; the workflow overall status does not
// advance.
func (e *Engine) executeClientImport(ctx context.Context, workflow *models.RegulatoryWorkflow, step *models.WorkflowStep) error {
	profile, err := e.deps.Registry.Lookup(ctx, workflow.ClientID)
	if err != nil {
		if e.metrics != nil {
			e.metrics.CollaboratorFailures.WithLabelValues("client_registry").Inc()
		}
		return err
	}
	if err := profile.Validate(); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeDependency, "registry returned an invalid profile")
	}

	workflow.Profile = profile
	if err := e.deps.Clients.Put(ctx, profile); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to store imported profile")
	}

	step.Status = models.StepStatusCompleted
	step.Result = &models.StepResult{Import: &models.ImportResult{
		EntityName:   profile.EntityName,
		EntityType:   profile.EntityType,
		Jurisdiction: profile.Jurisdiction,
		ProductCount: len(profile.Products),
	}}
	return nil
}

// executeClassification determines applicable regulations and runs all three
// check processors, attaching the aggregated classification to the workflow.
// Classification itself always completes; an empty result is a data problem
// for later steps, not a classification failure.
func (e *Engine) executeClassification(ctx context.Context, workflow *models.RegulatoryWorkflow, step *models.WorkflowStep) error {
	profile := workflow.Profile
	regulations := e.deps.Classifier.Classify(profile)
	workflow.ApplicableRegulations = regulations

	highLevel := e.deps.HighLevel.EvaluateAll(profile, regulations)
	documents, err := e.deps.Documents.ValidateAll(ctx, profile.ClientID, regulations)
	if err != nil {
		if e.metrics != nil {
			e.metrics.CollaboratorFailures.WithLabelValues("document_validation").Inc()
		}
		return err
	}
	dataQuality, err := e.deps.DataQuality.CheckAll(ctx, profile.ClientID, regulations)
	if err != nil {
		if e.metrics != nil {
			e.metrics.CollaboratorFailures.WithLabelValues("data_quality").Inc()
		}
		return err
	}

	classification := aggregate.Aggregate(profile.ClientID, highLevel, documents, dataQuality)
	if err := e.deps.Classifications.Create(ctx, classification); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to store classification")
	}
	workflow.Classification = classification

	if e.metrics != nil {
		e.metrics.ClassificationsCompleted.WithLabelValues(string(classification.Status)).Inc()
	}
	step.Status = models.StepStatusCompleted
	step.Result = &models.StepResult{Classification: &models.ClassificationResult{
		ClassificationID: classification.ClassificationID,
		Basis:            classificationBasis,
		Regulations:      regulations,
		RegulationCount:  len(regulations),
		OverallStatus:    classification.Status,
	}}
	return nil
}

// executeDocumentValidation checks required-document completeness for every
// applicable regulation. Any missing required document parks the step on
// manual review and arms the manual_review step.
func (e *Engine) executeDocumentValidation(ctx context.Context, workflow *models.RegulatoryWorkflow, step *models.WorkflowStep) error {
	result := &models.DocumentValidationResult{
		RegulationsChecked: len(workflow.ApplicableRegulations),
		Complete:           true,
	}

	for _, regulation := range workflow.ApplicableRegulations {
		rule, ok := e.deps.Rules.Get(regulation)
		if !ok {
			continue
		}
		required := rule.RequiredDocumentTypes()
		if len(required) == 0 {
			continue
		}

		availability, err := e.deps.Completeness.Check(ctx, workflow.ClientID, regulation, required)
		if err != nil {
			if e.metrics != nil {
				e.metrics.CollaboratorFailures.WithLabelValues("document_completeness").Inc()
			}
			return err
		}

		var missing []string
		for _, docType := range required {
			if !availability[docType] {
				missing = append(missing, docType)
			}
		}
		if len(missing) > 0 {
			result.Complete = false
			if result.MissingDocuments == nil {
				result.MissingDocuments = make(map[string][]string)
			}
			result.MissingDocuments[regulation] = missing
		}
	}

	step.Result = &models.StepResult{DocumentValidation: result}
	if result.Complete {
		step.Status = models.StepStatusCompleted
		return nil
	}

	step.Status = models.StepStatusManualReview
	if review := workflow.Step(models.StepManualReview); review.Status == models.StepStatusNotStarted {
		now := time.Now()
		review.Status = models.StepStatusInProgress
		review.StartedAt = &now
	}
	return nil
}

// executeManualReview applies the reviewer's decision. Approval releases the
// parked document checks; rejection is terminal for the entire workflow.
func (e *Engine) executeManualReview(ctx context.Context, workflow *models.RegulatoryWorkflow, step *models.WorkflowStep, req AdvanceRequest) error {
	now := time.Now()
	step.Result = &models.StepResult{ManualReview: &models.ManualReviewResult{
		Decision:  req.Decision,
		Notes:     req.Notes,
		DecidedAt: now,
	}}

	if workflow.Classification != nil {
		e.resolveParkedDocumentChecks(ctx, workflow, req, now)
	}

	if req.Decision == models.ReviewApproved {
		step.Status = models.StepStatusApproved
	} else {
		step.Status = models.StepStatusRejected
	}

	if e.metrics != nil {
		e.metrics.ManualReviewDecisions.WithLabelValues(string(req.Decision)).Inc()
	}
	e.emit(ctx, audit.Event{
		Type:       audit.EventReviewDecided,
		ClientID:   workflow.ClientID,
		WorkflowID: workflow.WorkflowID,
		Step:       string(step.Name),
		Detail:     string(req.Decision),
		OccurredAt: now,
	})
	return nil
}

// resolveParkedDocumentChecks moves document checks awaiting a reviewer to
// their decided state. Completion stamps are set at decision time.
func (e *Engine) resolveParkedDocumentChecks(ctx context.Context, workflow *models.RegulatoryWorkflow, req AdvanceRequest, now time.Time) {
	classification := workflow.Classification
	changed := false
	for i := range classification.DocumentChecks {
		check := &classification.DocumentChecks[i]
		if check.ManualReviewStatus != regmodels.CheckStatusPending {
			continue
		}
		if req.Decision == models.ReviewApproved {
			check.ManualReviewStatus = regmodels.CheckStatusPassed
		} else {
			check.ManualReviewStatus = regmodels.CheckStatusFailed
		}
		if req.Notes != "" {
			check.ManualNotes = req.Notes
		}
		completed := now
		check.CompletedAt = &completed
		changed = true
	}
	if !changed {
		return
	}
	aggregate.Rederive(classification)
	if err := e.deps.Classifications.Update(ctx, classification); err != nil && e.logger != nil {
		e.logger.WarnContext(ctx, "failed to persist reviewed document checks",
			"classification_id", classification.ClassificationID, "error", err)
	}
}

// executeClientCommunication generates the regulatory summary notification
// for the profile contact.
func (e *Engine) executeClientCommunication(ctx context.Context, workflow *models.RegulatoryWorkflow, step *models.WorkflowStep) error {
	if workflow.Profile == nil {
		return pkgerrors.New(pkgerrors.CodePrecondition, "client_communication requires an imported profile")
	}

	now := time.Now()
	communication := e.generator.RegulatorySummary(workflow.Profile, workflow.ApplicableRegulations, now)
	workflow.Communications = append(workflow.Communications, communication)

	if e.metrics != nil {
		e.metrics.CommunicationsSent.Inc()
	}
	e.emit(ctx, audit.Event{
		Type:       audit.EventCommunicationSent,
		ClientID:   workflow.ClientID,
		WorkflowID: workflow.WorkflowID,
		Step:       string(step.Name),
		Detail:     communication.Subject,
		OccurredAt: now,
	})

	step.Status = models.StepStatusCompleted
	step.Result = &models.StepResult{Communication: &models.CommunicationResult{
		CommunicationID: communication.CommunicationID,
		Recipient:       workflow.Profile.Email,
		Subject:         communication.Subject,
	}}
	return nil
}
