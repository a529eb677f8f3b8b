package readstore

import (
	"context"

	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/infra"
	"activity-ledger/internal/infra/db"
	"activity-ledger/internal/pkg/pgconv"
	"activity-ledger/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, user_id, activity_id, status, attended_at, cancelled_at, created_at, updated_at`

const (
	getBookingSQL = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	getBookingForUpdateSQL = getBookingSQL + ` FOR UPDATE`

	listBookingsByActivitySQL = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE activity_id = $1
ORDER BY id`

	listBookingsByUserSQL = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
OFFSET $2 LIMIT $3`

	countBookingsByUserSQL = `SELECT count(*) FROM bookings WHERE user_id = $1`

	hasLiveBookingSQL = `
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE user_id = $1 AND activity_id = $2 AND status IN ('pending', 'confirmed')
)`
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

type bookingRow struct {
	id          int64
	userID      int64
	activityID  int64
	status      string
	attendedAt  pgtype.Timestamptz
	cancelledAt pgtype.Timestamptz
	createdAt   pgtype.Timestamptz
	updatedAt   pgtype.Timestamptz
}

func scanBookingRow(row pgx.Row) (bookingRow, error) {
	var b bookingRow
	err := row.Scan(&b.id, &b.userID, &b.activityID, &b.status, &b.attendedAt, &b.cancelledAt, &b.createdAt, &b.updatedAt)
	return b, err
}

func collectBookingRows(rows pgx.Rows) ([]bookingRow, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (bookingRow, error) {
		return scanBookingRow(row)
	})
}

func (b bookingRow) toDomain() (*booking.Booking, error) {
	status, err := booking.ParseStatus(b.status)
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(
		b.id, b.userID, b.activityID, status,
		pgconv.TimePtrFromPgtype(b.attendedAt),
		pgconv.TimePtrFromPgtype(b.cancelledAt),
		pgconv.TimeFromPgtype(b.createdAt),
		pgconv.TimeFromPgtype(b.updatedAt),
	), nil
}

func (b bookingRow) toView() *queries.BookingView {
	return &queries.BookingView{
		ID:          b.id,
		UserID:      b.userID,
		ActivityID:  b.activityID,
		Status:      b.status,
		AttendedAt:  pgconv.TimePtrFromPgtype(b.attendedAt),
		CancelledAt: pgconv.TimePtrFromPgtype(b.cancelledAt),
		CreatedAt:   pgconv.TimeFromPgtype(b.createdAt),
		UpdatedAt:   pgconv.TimeFromPgtype(b.updatedAt),
	}
}

func (r *BookingReadStore) getRow(ctx context.Context, sql string, id int64) (bookingRow, error) {
	row, err := scanBookingRow(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return row, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return row, infra.WrapRepoErr("failed to get booking by id", err)
	}
	return row, nil
}

func (r *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	row, err := r.getRow(ctx, getBookingSQL, id)
	if err != nil {
		return nil, err
	}
	return row.toView(), nil
}

func (r *BookingReadStore) FindDomainByID(ctx context.Context, id int64) (*booking.Booking, error) {
	row, err := r.getRow(ctx, getBookingSQL, id)
	if err != nil {
		return nil, err
	}
	return r.toDomain(row)
}

// FindDomainByIDForUpdate must run inside a transaction; the row stays locked until it ends.
func (r *BookingReadStore) FindDomainByIDForUpdate(ctx context.Context, id int64) (*booking.Booking, error) {
	row, err := r.getRow(ctx, getBookingForUpdateSQL, id)
	if err != nil {
		return nil, err
	}
	return r.toDomain(row)
}

func (r *BookingReadStore) FindDomainByActivity(ctx context.Context, activityID int64) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, listBookingsByActivitySQL, activityID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by activity", err)
	}
	bookingRows, err := collectBookingRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings by activity", err)
	}

	out := make([]*booking.Booking, 0, len(bookingRows))
	for _, row := range bookingRows {
		b, err := r.toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BookingReadStore) FindByUser(ctx context.Context, userID int64, offset, limit int) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, listBookingsByUserSQL, userID, offset, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	bookingRows, err := collectBookingRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings by user", err)
	}

	out := make([]*queries.BookingView, 0, len(bookingRows))
	for _, row := range bookingRows {
		out = append(out, row.toView())
	}
	return out, nil
}

func (r *BookingReadStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countBookingsByUserSQL, userID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count bookings by user", err)
	}
	return int(n), nil
}

func (r *BookingReadStore) HasLiveBooking(ctx context.Context, userID, activityID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, hasLiveBookingSQL, userID, activityID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check live booking", err)
	}
	return exists, nil
}

func (r *BookingReadStore) toDomain(row bookingRow) (*booking.Booking, error) {
	b, err := row.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking is invalid", err)
	}
	return b, nil
}
