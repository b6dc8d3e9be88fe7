package checks

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/internal/upstream"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

// DocumentValidator fetches each regulation's compliance document and runs it
// through AI analysis. Both collaborator calls can suspend; failures surface
// as dependency errors, never as silently-failed checks.
type DocumentValidator struct {
	fetcher  upstream.DocumentFetcher
	analyzer upstream.DocumentAnalyzer
}

// NewDocumentValidator constructs a validator with its collaborators.
func NewDocumentValidator(fetcher upstream.DocumentFetcher, analyzer upstream.DocumentAnalyzer) *DocumentValidator {
	return &DocumentValidator{fetcher: fetcher, analyzer: analyzer}
}

// Validate checks one regulation's document. A compliant verdict passes both
// sub-states and stamps completion; a non-compliant verdict parks the check
// on a reviewer with completion unset.
func (v *DocumentValidator) Validate(ctx context.Context, clientID domain.ClientID, regulation string) (models.DocumentCheck, error) {
	doc, err := v.fetcher.Fetch(ctx, clientID, regulation)
	if err != nil {
		return models.DocumentCheck{}, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "document fetch failed for "+regulation)
	}

	analysis, err := v.analyzer.Analyze(ctx, doc.Content, regulation)
	if err != nil {
		return models.DocumentCheck{}, pkgerrors.Wrap(err, pkgerrors.CodeDependency, "document analysis failed for "+regulation)
	}

	now := time.Now()
	check := models.DocumentCheck{
		CheckID:        domain.NewCheckID(),
		RegulationName: regulation,
		DocumentType:   doc.DocumentType,
		DocumentID:     doc.DocumentID,
		AIConfidence:   analysis.Confidence,
		AIFeedback:     feedback(analysis, regulation),
		CreatedAt:      now,
	}
	if analysis.IsCompliant {
		check.AIValidationStatus = models.CheckStatusPassed
		check.ManualReviewStatus = models.CheckStatusPassed
		check.CompletedAt = &now
	} else {
		check.AIValidationStatus = models.CheckStatusManualReview
		check.ManualReviewStatus = models.CheckStatusPending
	}
	return check, nil
}

// ValidateAll fans out over regulations. Per-regulation validations run
// concurrently; the returned slice follows the input regulation order.
func (v *DocumentValidator) ValidateAll(ctx context.Context, clientID domain.ClientID, regulations []string) ([]models.DocumentCheck, error) {
	results := make([]models.DocumentCheck, len(regulations))
	g, gctx := errgroup.WithContext(ctx)
	for i, regulation := range regulations {
		g.Go(func() error {
			check, err := v.Validate(gctx, clientID, regulation)
			if err != nil {
				return err
			}
			results[i] = check
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func feedback(analysis *upstream.Analysis, regulation string) string {
	if analysis.IsCompliant {
		return "Document analysis for " + regulation + " shows strong compliance indicators."
	}
	msg := "Document analysis for " + regulation + " shows areas requiring manual review."
	for _, issue := range analysis.Issues {
		msg += " " + issue + "."
	}
	return msg
}
