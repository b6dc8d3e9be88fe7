// Package upstream defines the collaborator contracts the engine consumes:
// client registry, document fetch, document analysis, data quality and
// document completeness. Each has a real-I/O implementation and deterministic
// in-process defaults for development and tests.
package upstream

import (
	"context"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
)

// Document is a raw document fetched from an upstream document system.
type Document struct {
	DocumentID   domain.DocumentID `json:"document_id"`
	DocumentType string            `json:"document_type"`
	Content      string            `json:"content"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Analysis is the compliance verdict returned by document analysis.
type Analysis struct {
	IsCompliant bool     `json:"is_compliant"`
	Confidence  float64  `json:"confidence"`
	Findings    []string `json:"findings,omitempty"`
	Issues      []string `json:"issues,omitempty"`
}

// FieldQuality is the per-field result of a data-quality assessment.
type FieldQuality struct {
	Score  float64  `json:"score"`
	Issues []string `json:"issues,omitempty"`
}

// ClientRegistry resolves client identifiers to full profiles. Lookup of an
// unknown id returns an error carrying pkg/errors.CodeNotFound.
type ClientRegistry interface {
	Lookup(ctx context.Context, clientID domain.ClientID) (*models.ClientProfile, error)
}

// DocumentFetcher retrieves the compliance document for a regulation.
type DocumentFetcher interface {
	Fetch(ctx context.Context, clientID domain.ClientID, regulation string) (*Document, error)
}

// DocumentAnalyzer runs OCR/LLM analysis over document content.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, content string, regulation string) (*Analysis, error)
}

// DataQualityService assesses per-field data quality for a client under a
// regulation. Keys are field names; the caller imposes iteration order.
type DataQualityService interface {
	Assess(ctx context.Context, clientID domain.ClientID, regulation string) (map[string]FieldQuality, error)
}

// DocumentCompletenessService reports availability per required document type.
type DocumentCompletenessService interface {
	Check(ctx context.Context, clientID domain.ClientID, regulation string, requiredDocs []string) (map[string]bool, error)
}
