package history

import "activity-ledger/internal/pkg/errs"

// Outcome is the terminal classification of a booking once its activity's
// window has closed. It is deliberately a separate type from booking.Status.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeNoShow    Outcome = "no-show"
)

var AllOutcomes = []Outcome{OutcomeCompleted, OutcomeCancelled, OutcomeNoShow}

func (o Outcome) String() string {
	return string(o)
}

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeCompleted, OutcomeCancelled, OutcomeNoShow:
		return true
	default:
		return false
	}
}

func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(s)
	if !o.IsValid() {
		return "", errs.Wrapf(errs.ErrInvalidOutcome, "%q", s)
	}
	return o, nil
}
