package shared

//go:generate mockgen -source=uow.go -destination=../../mock/sharedmock/uow.go -package=sharedmock

import (
	"context"
	"time"

	"activity-ledger/internal/domain/activity"
	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/domain/history"
	"activity-ledger/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: READ COMMITTED transaction for row-locked writes, retried on deadlock
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	History() HistoryRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ActivityByID(ctx context.Context, id int64) (*activity.Activity, error)
	// ActivityByIDForUpdate locks the activity row until the surrounding transaction ends.
	ActivityByIDForUpdate(ctx context.Context, id int64) (*activity.Activity, error)
	// LiveBookingCount is derived from the booking rows on every call.
	LiveBookingCount(ctx context.Context, activityID int64) (int, error)
	HasLiveBooking(ctx context.Context, userID, activityID int64) (bool, error)
	BookingByID(ctx context.Context, id int64) (*booking.Booking, error)
	// BookingByIDForUpdate locks the row until the surrounding transaction ends.
	BookingByIDForUpdate(ctx context.Context, id int64) (*booking.Booking, error)
	BookingsByActivity(ctx context.Context, activityID int64) ([]*booking.Booking, error)
	EndedActivityIDs(ctx context.Context, from, to time.Time) ([]int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error)
	// UpdateState persists b only if the stored status still equals expected.
	UpdateState(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error
}

type HistoryRepository interface {
	// Upsert returns the stored row and true when it was newly inserted.
	Upsert(ctx context.Context, tx db.DBTX, rec *history.Record) (*history.Record, bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]NotificationJob, error)
	MarkSent(ctx context.Context, tx db.DBTX, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, tx db.DBTX, jobID uuid.UUID, lastError string, nextRunAt time.Time, terminal bool) error
}
