package commands

import (
	"context"
	"log/slog"
	"time"

	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/infra"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/usecase/queries"
	"activity-ledger/internal/usecase/shared"
)

// RequestBooking admits a new pending booking. The activity row is locked
// first, so admissions for one activity run one at a time and the live count
// read after the lock includes every booking committed before it.
func (uc *bookingUseCaseImpl) RequestBooking(ctx context.Context, userID, activityID int64) (*queries.BookingView, error) {
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	started := time.Now()
	var created *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		act, err := tx.Reads().ActivityByIDForUpdate(ctx, activityID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(errs.ErrActivityNotBookable, "activity %d does not exist", activityID)
			}
			return err
		}
		if err := act.CheckBookable(now); err != nil {
			return err
		}

		hasLive, err := tx.Reads().HasLiveBooking(ctx, userID, activityID)
		if err != nil {
			return err
		}
		liveCount, err := tx.Reads().LiveBookingCount(ctx, activityID)
		if err != nil {
			return err
		}

		b, err := booking.Admit(booking.AdmissionInput{
			UserID:         userID,
			Activity:       act,
			HasLiveBooking: hasLive,
			LiveCount:      liveCount,
			Now:            now,
		})
		if err != nil {
			return err
		}

		id, err := tx.Bookings().Create(ctx, tx.DB(), b)
		if err != nil {
			return err
		}
		created = booking.Reconstruct(id, b.UserID(), b.ActivityID(), b.Status(), nil, nil, b.CreatedAt(), b.UpdatedAt())

		return enqueue(ctx, tx, KindBookingEvent, TopicBookingCreated, newBookingEvent(created, now), now)
	})

	result := resultLabel(err)
	uc.metrics.ObserveAdmission(result, time.Since(started))
	if err != nil {
		if result == "error" || result == "transient" {
			slog.ErrorContext(ctx, "booking admission failed", "user_id", userID, "activity_id", activityID, "error", err.Error())
		}
		return nil, err
	}

	slog.InfoContext(ctx, "booking admitted", "booking_id", created.ID(), "user_id", userID, "activity_id", activityID)
	return bookingView(created), nil
}
