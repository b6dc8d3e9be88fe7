// Package handler exposes the regulatory classification HTTP API.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
	"github.com/naveenbxyz/iclm/pkg/httputil"
)

// Service defines the classification operations the handler exposes.
type Service interface {
	TriggerClassification(ctx context.Context, profile *models.ClientProfile) (*models.RegulatoryClassification, error)
	GetClassification(ctx context.Context, id domain.ClassificationID) (*models.RegulatoryClassification, error)
	ListClassifications(ctx context.Context) ([]*models.RegulatoryClassification, error)
	UpdateDocumentCheckNotes(ctx context.Context, id domain.ClassificationID, checkID domain.CheckID, notes string) (*models.DocumentCheck, error)
	ClientName(ctx context.Context, clientID domain.ClientID) string
}

// Handler handles classification endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a classification Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the classification routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/regulatory/classifications", func(r chi.Router) {
		r.Post("/", h.handleTrigger)
		r.Get("/", h.handleList)
		r.Get("/{classificationID}", h.handleGet)
		r.Put("/{classificationID}/document-checks/{checkID}/notes", h.handleUpdateNotes)
	})
}

// handleTrigger runs a full classification for the submitted client profile.
func (h *Handler) handleTrigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req triggerClassificationRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	profile, err := req.toProfile()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	classification, err := h.service.TriggerClassification(ctx, profile)
	if err != nil {
		h.logger.WarnContext(ctx, "classification trigger failed",
			"client_id", profile.ClientID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toClassificationDetail(classification, profile.EntityName))
}

// handleList returns one summary per classification, newest last.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.ListClassifications(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summaries := make([]classificationSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, toClassificationSummary(record, h.service.ClientName(ctx, record.ClientID)))
	}
	httputil.WriteJSON(w, http.StatusOK, listClassificationsResponse{Classifications: summaries})
}

// handleGet returns the full check breakdown for one classification.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := domain.ClassificationID(chi.URLParam(r, "classificationID"))
	record, err := h.service.GetClassification(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toClassificationDetail(record, h.service.ClientName(ctx, record.ClientID)))
}

// handleUpdateNotes stores reviewer notes on a single document check.
func (h *Handler) handleUpdateNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := domain.ClassificationID(chi.URLParam(r, "classificationID"))
	checkID := domain.CheckID(chi.URLParam(r, "checkID"))

	var req updateNotesRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	check, err := h.service.UpdateDocumentCheckNotes(ctx, id, checkID, req.Notes)
	if err != nil {
		if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) && !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			h.logger.WarnContext(ctx, "document check notes update failed",
				"classification_id", id, "check_id", checkID, "error", err)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, check)
}
