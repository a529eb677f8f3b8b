package commands

//go:generate mockgen -source=booking.go -destination=../../mock/commandsmock/booking.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"activity-ledger/internal/domain/activity"
	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/infra"
	"activity-ledger/internal/pkg/clock"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/usecase/queries"
	"activity-ledger/internal/usecase/shared"
)

type BookingCommands interface {
	RequestBooking(ctx context.Context, userID, activityID int64) (*queries.BookingView, error)
	Cancel(ctx context.Context, userID, bookingID int64) (*queries.BookingView, error)
	ConfirmByAdmin(ctx context.Context, bookingID int64) (*queries.BookingView, error)
	ConfirmAttendance(ctx context.Context, userID, bookingID int64) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics shared.Metrics
	timeout time.Duration
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock, metrics shared.Metrics, timeout time.Duration) BookingCommands {
	if metrics == nil {
		metrics = shared.NopMetrics{}
	}
	return &bookingUseCaseImpl{uow: uow, clock: clk, metrics: metrics, timeout: timeout}
}

func (uc *bookingUseCaseImpl) loadBookingForUpdate(ctx context.Context, tx shared.Tx, bookingID int64) (*booking.Booking, error) {
	b, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrBookingNotFound, "booking %d", bookingID)
		}
		return nil, err
	}
	return b, nil
}

type transitionFunc func(b *booking.Booking, act *activity.Activity, now time.Time) error

// transition locks the booking row, applies fn and writes the new state with
// a compare-and-set on the previous status.
func (uc *bookingUseCaseImpl) transition(ctx context.Context, op, topic string, bookingID int64, fn transitionFunc) (*queries.BookingView, error) {
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	var updated *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		b, err := uc.loadBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		act, err := tx.Reads().ActivityByID(ctx, b.ActivityID())
		if err != nil {
			return err
		}

		previous := b.Status()
		if err := fn(b, act, now); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateState(ctx, tx.DB(), b, previous); err != nil {
			return err
		}
		updated = b
		return enqueue(ctx, tx, KindBookingEvent, topic, newBookingEvent(b, now), now)
	})

	result := resultLabel(err)
	uc.metrics.ObserveTransition(op, result)
	if err != nil {
		if result == "error" || result == "transient" {
			slog.ErrorContext(ctx, "booking transition failed", "op", op, "booking_id", bookingID, "error", err.Error())
		}
		return nil, err
	}
	return bookingView(updated), nil
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, userID, bookingID int64) (*queries.BookingView, error) {
	return uc.transition(ctx, "cancel", TopicBookingCancelled, bookingID,
		func(b *booking.Booking, _ *activity.Activity, now time.Time) error {
			return b.Cancel(userID, now)
		})
}

func (uc *bookingUseCaseImpl) ConfirmByAdmin(ctx context.Context, bookingID int64) (*queries.BookingView, error) {
	return uc.transition(ctx, "confirm_admin", TopicBookingConfirmed, bookingID,
		func(b *booking.Booking, act *activity.Activity, now time.Time) error {
			return b.ConfirmByAdmin(act, now)
		})
}

func (uc *bookingUseCaseImpl) ConfirmAttendance(ctx context.Context, userID, bookingID int64) (*queries.BookingView, error) {
	return uc.transition(ctx, "confirm_attendance", TopicBookingAttended, bookingID,
		func(b *booking.Booking, act *activity.Activity, now time.Time) error {
			return b.ConfirmAttendance(userID, act, now)
		})
}
