// Package aggregate combines the three check lists into one classification
// record with a derived overall status and progress fraction.
package aggregate

import (
	"time"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
)

// Aggregate builds a RegulatoryClassification over the given check lists.
//
// Progress is terminal checks over total checks, in [0,1]. Overall status
// precedence: any failed high-level or DQ check makes the classification
// failed regardless of document outcomes; a categorically ineligible
// regulation must never be masked by a softer needs-review signal. Only then
// does any document check awaiting review mark the classification
// manual_review; otherwise it is passed.
func Aggregate(
	clientID domain.ClientID,
	highLevel []models.HighLevelCheck,
	documents []models.DocumentCheck,
	dataQuality []models.DataQualityCheck,
) *models.RegulatoryClassification {
	classification := &models.RegulatoryClassification{
		ClassificationID: domain.NewClassificationID(),
		ClientID:         clientID,
		HighLevelChecks:  highLevel,
		DocumentChecks:   documents,
		DQChecks:         dataQuality,
		CreatedAt:        time.Now(),
	}
	Rederive(classification)
	return classification
}

// Rederive recomputes Status, Progress and CompletedAt from the current check
// lists. Called on construction and again whenever a reviewer resolves parked
// document checks, so a classification never stays manual_review after every
// parked check has been decided.
//
// A document check's effective outcome is the manual review verdict once one
// exists, the AI verdict otherwise.
func Rederive(classification *models.RegulatoryClassification) {
	total := classification.TotalChecks()
	terminal := 0
	failed := false
	needsReview := false

	for _, check := range classification.HighLevelChecks {
		if check.Status.IsTerminal() {
			terminal++
		}
		if check.Status == models.CheckStatusFailed {
			failed = true
		}
	}
	for _, check := range classification.DocumentChecks {
		status := check.AIValidationStatus
		if check.ManualReviewStatus.IsTerminal() {
			status = check.ManualReviewStatus
		}
		if status.IsTerminal() {
			terminal++
		}
		switch status {
		case models.CheckStatusFailed:
			failed = true
		case models.CheckStatusManualReview:
			needsReview = true
		}
	}
	for _, check := range classification.DQChecks {
		if check.Status.IsTerminal() {
			terminal++
		}
		if check.Status == models.CheckStatusFailed {
			failed = true
		}
	}

	classification.Progress = 0
	if total > 0 {
		classification.Progress = float64(terminal) / float64(total)
	}

	switch {
	case failed:
		classification.Status = models.CheckStatusFailed
	case needsReview:
		classification.Status = models.CheckStatusManualReview
	default:
		classification.Status = models.CheckStatusPassed
	}

	if !classification.Status.IsTerminal() {
		classification.CompletedAt = nil
	} else if classification.CompletedAt == nil {
		completed := time.Now()
		classification.CompletedAt = &completed
	}
}
