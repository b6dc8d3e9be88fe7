package models

import (
	"time"

	"github.com/naveenbxyz/iclm/pkg/domain"
)

// RegulatoryClassification aggregates all check records produced for one
// client's classification run.
//
// Invariants:
//   - Status and Progress are derived by the aggregator, never set directly
//   - Progress = terminal checks / total checks, in [0,1]
//   - CompletedAt is set only when Status is terminal (passed or failed)
type RegulatoryClassification struct {
	ClassificationID domain.ClassificationID `json:"classification_id"`
	ClientID         domain.ClientID         `json:"client_id"`
	Status           CheckStatus             `json:"status"`
	HighLevelChecks  []HighLevelCheck        `json:"high_level_checks"`
	DocumentChecks   []DocumentCheck         `json:"document_checks"`
	DQChecks         []DataQualityCheck      `json:"dq_checks"`
	Progress         float64                 `json:"overall_progress"`
	CreatedAt        time.Time               `json:"created_at"`
	CompletedAt      *time.Time              `json:"completed_at,omitempty"`
}

// TotalChecks counts check records across all three variants.
func (c *RegulatoryClassification) TotalChecks() int {
	return len(c.HighLevelChecks) + len(c.DocumentChecks) + len(c.DQChecks)
}

// FindDocumentCheck returns a pointer into DocumentChecks for the given
// check id, or nil. Callers mutating through it own the store write.
func (c *RegulatoryClassification) FindDocumentCheck(checkID domain.CheckID) *DocumentCheck {
	for i := range c.DocumentChecks {
		if c.DocumentChecks[i].CheckID == checkID {
			return &c.DocumentChecks[i]
		}
	}
	return nil
}

// Clone returns a deep copy so store reads never alias stored state.
func (c *RegulatoryClassification) Clone() *RegulatoryClassification {
	if c == nil {
		return nil
	}
	cp := *c
	cp.HighLevelChecks = make([]HighLevelCheck, len(c.HighLevelChecks))
	for i, check := range c.HighLevelChecks {
		check.Criteria = cloneBoolMap(check.Criteria)
		check.CompletedAt = cloneTime(check.CompletedAt)
		cp.HighLevelChecks[i] = check
	}
	cp.DocumentChecks = make([]DocumentCheck, len(c.DocumentChecks))
	for i, check := range c.DocumentChecks {
		check.CompletedAt = cloneTime(check.CompletedAt)
		cp.DocumentChecks[i] = check
	}
	cp.DQChecks = make([]DataQualityCheck, len(c.DQChecks))
	for i, check := range c.DQChecks {
		check.Issues = append([]string(nil), check.Issues...)
		check.CompletedAt = cloneTime(check.CompletedAt)
		cp.DQChecks[i] = check
	}
	cp.CompletedAt = cloneTime(c.CompletedAt)
	return &cp
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	ts := *t
	return &ts
}
