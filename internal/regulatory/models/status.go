package models

// CheckStatus enumerates the lifecycle of a compliance check.
//
// Transitions:
//   - pending → in_progress → {passed | failed | manual_review}
//   - manual_review → {passed | failed} (reviewer decision)
//
// passed and failed are terminal; manual_review parks the check on a human.
type CheckStatus string

const (
	CheckStatusPending      CheckStatus = "pending"
	CheckStatusInProgress   CheckStatus = "in_progress"
	CheckStatusPassed       CheckStatus = "passed"
	CheckStatusFailed       CheckStatus = "failed"
	CheckStatusManualReview CheckStatus = "manual_review"
)

// IsValid reports whether s is a member of the enumeration.
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckStatusPending, CheckStatusInProgress, CheckStatusPassed,
		CheckStatusFailed, CheckStatusManualReview:
		return true
	}
	return false
}

// IsTerminal reports whether no further automatic transition occurs from s.
func (s CheckStatus) IsTerminal() bool {
	return s == CheckStatusPassed || s == CheckStatusFailed
}
