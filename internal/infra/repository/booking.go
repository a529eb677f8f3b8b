package repository

import (
	"context"

	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/infra"
	"activity-ledger/internal/infra/db"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/pkg/pgconv"
)

// LiveBookingIndex enforces one live booking per (user, activity).
const LiveBookingIndex = "uq_bookings_live_user_activity"

const (
	createBookingSQL = `
INSERT INTO bookings (user_id, activity_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
RETURNING id`

	updateBookingStateSQL = `
UPDATE bookings
SET status = $3, attended_at = $4, cancelled_at = $5, updated_at = $6
WHERE id = $1 AND status = $2`
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, createBookingSQL,
		b.UserID(), b.ActivityID(), b.Status().String(), pgconv.TimeToPgtype(b.CreatedAt()),
	).Scan(&id)
	if err != nil {
		repoErr := infra.WrapRepoErr("failed to create booking", err)
		if infra.IsConstraint(repoErr, LiveBookingIndex) {
			return 0, errs.Mark(repoErr, errs.ErrDuplicateBooking)
		}
		return 0, repoErr
	}
	return id, nil
}

func (r *BookingRepository) UpdateState(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error {
	tag, err := tx.Exec(ctx, updateBookingStateSQL,
		b.ID(),
		expected.String(),
		b.Status().String(),
		pgconv.TimePtrToPgtype(b.AttendedAt()),
		pgconv.TimePtrToPgtype(b.CancelledAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking state", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.Wrapf(errs.ErrInvalidState, "booking %d is no longer %s", b.ID(), expected)
	}
	return nil
}
