package history

import (
	"time"

	"activity-ledger/internal/domain/activity"
	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/pkg/errs"
)

// Record is one permanent history row. (UserID, ActivityID, BookingID) is its
// natural key; recording the same triple again overwrites Outcome and
// ParticipatedAt.
type Record struct {
	ID             int64
	UserID         int64
	ActivityID     int64
	BookingID      int64
	Outcome        Outcome
	ParticipatedAt time.Time
}

func NewRecord(userID, activityID, bookingID int64, outcome Outcome, now time.Time) (*Record, error) {
	if !outcome.IsValid() {
		return nil, errs.Wrapf(errs.ErrInvalidOutcome, "%q", outcome)
	}
	return &Record{
		UserID:         userID,
		ActivityID:     activityID,
		BookingID:      bookingID,
		Outcome:        outcome,
		ParticipatedAt: now,
	}, nil
}

// Classify maps a booking's final state to its outcome:
//   - cancelled bookings are cancelled
//   - bookings whose attendance was confirmed by the activity's end are completed
//   - everything else is a no-show
func Classify(b *booking.Booking, act *activity.Activity) Outcome {
	if b.Status() == booking.StatusCancelled {
		return OutcomeCancelled
	}
	if at := b.AttendedAt(); at != nil && !at.After(act.EndTime()) {
		return OutcomeCompleted
	}
	return OutcomeNoShow
}
