// Package service orchestrates standalone regulatory classification runs:
// trigger for a submitted profile, fetch, list, and reviewer note edits.
// The workflow engine drives the same processors through its own steps.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/naveenbxyz/iclm/internal/audit"
	"github.com/naveenbxyz/iclm/internal/platform/metrics"
	"github.com/naveenbxyz/iclm/internal/regulatory/aggregate"
	"github.com/naveenbxyz/iclm/internal/regulatory/checks"
	"github.com/naveenbxyz/iclm/internal/regulatory/classifier"
	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
	"github.com/naveenbxyz/iclm/pkg/sentinel"
)

// ClientStore persists imported client profiles.
type ClientStore interface {
	Put(ctx context.Context, profile *models.ClientProfile) error
	Get(ctx context.Context, clientID domain.ClientID) (*models.ClientProfile, error)
}

// ClassificationStore persists classification records.
type ClassificationStore interface {
	Create(ctx context.Context, record *models.RegulatoryClassification) error
	Update(ctx context.Context, record *models.RegulatoryClassification) error
	Get(ctx context.Context, id domain.ClassificationID) (*models.RegulatoryClassification, error)
	List(ctx context.Context) ([]*models.RegulatoryClassification, error)
}

// Service orchestrates classification runs.
type Service struct {
	clients         ClientStore
	classifications ClassificationStore
	classifier      *classifier.Classifier
	highLevel       *checks.HighLevelChecker
	documents       *checks.DocumentValidator
	dataQuality     *checks.DataQualityChecker

	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher audit.Publisher
}

// Option configures optional service dependencies.
type Option func(s *Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditPublisher attaches an audit event publisher.
func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// New constructs a Service.
func New(
	clients ClientStore,
	classifications ClassificationStore,
	cls *classifier.Classifier,
	highLevel *checks.HighLevelChecker,
	documents *checks.DocumentValidator,
	dataQuality *checks.DataQualityChecker,
	opts ...Option,
) *Service {
	s := &Service{
		clients:         clients,
		classifications: classifications,
		classifier:      cls,
		highLevel:       highLevel,
		documents:       documents,
		dataQuality:     dataQuality,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TriggerClassification stores the submitted profile and runs the full
// classification: rule-based regulation selection, all three check
// processors, aggregation.
func (s *Service) TriggerClassification(ctx context.Context, profile *models.ClientProfile) (*models.RegulatoryClassification, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	if err := s.clients.Put(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to store client profile")
	}
	if s.metrics != nil {
		s.metrics.ClassificationsTriggered.Inc()
	}

	regulations := s.classifier.Classify(profile)

	highLevel := s.highLevel.EvaluateAll(profile, regulations)
	documents, err := s.documents.ValidateAll(ctx, profile.ClientID, regulations)
	if err != nil {
		return nil, err
	}
	dataQuality, err := s.dataQuality.CheckAll(ctx, profile.ClientID, regulations)
	if err != nil {
		return nil, err
	}

	classification := aggregate.Aggregate(profile.ClientID, highLevel, documents, dataQuality)
	if err := s.classifications.Create(ctx, classification); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to store classification")
	}

	if s.metrics != nil {
		s.metrics.ClassificationsCompleted.WithLabelValues(string(classification.Status)).Inc()
	}
	s.log(ctx, "classification completed",
		"classification_id", classification.ClassificationID,
		"client_id", profile.ClientID,
		"status", classification.Status,
		"regulations", len(regulations),
	)
	s.emit(ctx, audit.Event{
		Type:       audit.EventClassificationComplete,
		ClientID:   profile.ClientID,
		Detail:     string(classification.Status),
		OccurredAt: time.Now(),
	})
	return classification, nil
}

// GetClassification returns one classification with its full check breakdown.
func (s *Service) GetClassification(ctx context.Context, id domain.ClassificationID) (*models.RegulatoryClassification, error) {
	record, err := s.classifications.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "classification %s not found", id)
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to load classification")
	}
	return record, nil
}

// ClientName resolves the entity name for a classification's client; empty
// when the profile is unknown.
func (s *Service) ClientName(ctx context.Context, clientID domain.ClientID) string {
	profile, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return ""
	}
	return profile.EntityName
}

// ListClassifications returns all classifications in creation order.
func (s *Service) ListClassifications(ctx context.Context) ([]*models.RegulatoryClassification, error) {
	records, err := s.classifications.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to list classifications")
	}
	return records, nil
}

// UpdateDocumentCheckNotes applies a reviewer's notes to one document check.
// Manual notes are the only reviewer-mutable field on a stored check.
func (s *Service) UpdateDocumentCheckNotes(ctx context.Context, id domain.ClassificationID, checkID domain.CheckID, notes string) (*models.DocumentCheck, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notes must not be empty")
	}

	record, err := s.GetClassification(ctx, id)
	if err != nil {
		return nil, err
	}
	check := record.FindDocumentCheck(checkID)
	if check == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "document check %s not found", checkID)
	}
	check.ManualNotes = notes

	if err := s.classifications.Update(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to persist manual notes")
	}
	s.log(ctx, "document check notes updated", "classification_id", id, "check_id", checkID)
	updated := *check
	return &updated, nil
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}
