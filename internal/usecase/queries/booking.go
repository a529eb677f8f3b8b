package queries

//go:generate mockgen -source=booking.go -destination=../../mock/queriesmock/booking.go -package=queriesmock

import (
	"context"
	"time"

	"activity-ledger/internal/infra"
	"activity-ledger/internal/pkg/errs"
)

var ErrActivityNotFound = errs.New("activity not found")

type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	FindByUser(ctx context.Context, userID int64, offset, limit int) ([]*BookingView, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type ActivityReadStore interface {
	FindViewByID(ctx context.Context, id int64) (*ActivityView, error)
	CountLiveBookings(ctx context.Context, activityID int64) (int, error)
}

type BookingQueries interface {
	GetBooking(ctx context.Context, userID, bookingID int64) (*BookingView, error)
	ListBookingsByUser(ctx context.Context, userID int64, page Page) ([]*BookingView, int, error)
	GetAvailability(ctx context.Context, activityID int64) (*Availability, error)
}

type bookingQueriesImpl struct {
	bookings   BookingReadStore
	activities ActivityReadStore
	timeout    time.Duration
}

func NewBookingQueries(bookings BookingReadStore, activities ActivityReadStore, timeout time.Duration) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, activities: activities, timeout: timeout}
}

// GetBooking hides other users' bookings behind not-found.
func (q *bookingQueriesImpl) GetBooking(ctx context.Context, userID, bookingID int64) (*BookingView, error) {
	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	b, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrBookingNotFound, "booking %d", bookingID)
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, errs.Wrapf(errs.ErrBookingNotFound, "booking %d", bookingID)
	}
	return b, nil
}

func (q *bookingQueriesImpl) ListBookingsByUser(ctx context.Context, userID int64, page Page) ([]*BookingView, int, error) {
	page, err := page.Normalize()
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	items, err := q.bookings.FindByUser(ctx, userID, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := q.bookings.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (q *bookingQueriesImpl) GetAvailability(ctx context.Context, activityID int64) (*Availability, error) {
	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	act, err := q.activities.FindViewByID(ctx, activityID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrActivityNotFound, "activity %d", activityID)
		}
		return nil, err
	}
	live, err := q.activities.CountLiveBookings(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return &Availability{
		ActivityID: act.ID,
		Capacity:   act.Capacity,
		Live:       live,
		Remaining:  max(act.Capacity-live, 0),
	}, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
