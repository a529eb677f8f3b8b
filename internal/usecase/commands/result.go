package commands

import (
	"context"
	"time"

	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/usecase/queries"
)

// resultLabel maps an operation error to a low-cardinality metrics label.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errs.Is(err, errs.ErrActivityFull):
		return "activity_full"
	case errs.Is(err, errs.ErrDuplicateBooking):
		return "duplicate"
	case errs.Is(err, errs.ErrActivityNotBookable):
		return "not_bookable"
	case errs.Is(err, errs.ErrBookingNotFound):
		return "not_found"
	case errs.Is(err, errs.ErrAlreadyCancelled):
		return "already_cancelled"
	case errs.Is(err, errs.ErrInvalidState):
		return "invalid_state"
	case errs.Is(err, errs.ErrActivityNotStarted):
		return "not_started"
	case errs.Is(err, errs.ErrInvalidOutcome):
		return "invalid_outcome"
	case errs.IsTransient(err):
		return "transient"
	default:
		return "error"
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func bookingView(b *booking.Booking) *queries.BookingView {
	return &queries.BookingView{
		ID:          b.ID(),
		UserID:      b.UserID(),
		ActivityID:  b.ActivityID(),
		Status:      b.Status().String(),
		AttendedAt:  b.AttendedAt(),
		CancelledAt: b.CancelledAt(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}
