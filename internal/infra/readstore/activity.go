package readstore

import (
	"context"
	"time"

	"activity-ledger/internal/domain/activity"
	"activity-ledger/internal/infra"
	"activity-ledger/internal/infra/db"
	"activity-ledger/internal/pkg/pgconv"
	"activity-ledger/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	getActivitySQL = `
SELECT id, name, capacity, start_time, end_time, status
FROM activities
WHERE id = $1`

	getActivityForUpdateSQL = getActivitySQL + `
FOR UPDATE`

	// Live count is always derived from booking rows; there is no stored counter.
	countLiveBookingsSQL = `
SELECT count(*)
FROM bookings
WHERE activity_id = $1 AND status IN ('pending', 'confirmed')`

	listEndedActivityIDsSQL = `
SELECT id
FROM activities
WHERE end_time >= $1 AND end_time < $2
ORDER BY end_time, id`
)

type ActivityReadStore struct {
	db db.DBTX
}

func NewActivityReadStore(db db.DBTX) *ActivityReadStore {
	return &ActivityReadStore{db: db}
}

type activityRow struct {
	id        int64
	name      string
	capacity  int32
	startTime pgtype.Timestamptz
	endTime   pgtype.Timestamptz
	status    string
}

func (r *ActivityReadStore) scanByID(ctx context.Context, query string, id int64) (*activityRow, error) {
	var row activityRow
	err := r.db.QueryRow(ctx, query, id).
		Scan(&row.id, &row.name, &row.capacity, &row.startTime, &row.endTime, &row.status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("activity not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get activity by id", err)
	}
	return &row, nil
}

func (r *ActivityReadStore) FindByID(ctx context.Context, id int64) (*activity.Activity, error) {
	return r.findActivity(ctx, getActivitySQL, id)
}

// FindByIDForUpdate must run inside a transaction; the row stays locked until it ends.
func (r *ActivityReadStore) FindByIDForUpdate(ctx context.Context, id int64) (*activity.Activity, error) {
	return r.findActivity(ctx, getActivityForUpdateSQL, id)
}

func (r *ActivityReadStore) findActivity(ctx context.Context, query string, id int64) (*activity.Activity, error) {
	row, err := r.scanByID(ctx, query, id)
	if err != nil {
		return nil, err
	}
	act, err := activity.Reconstruct(
		row.id,
		row.name,
		int(row.capacity),
		pgconv.TimeFromPgtype(row.startTime),
		pgconv.TimeFromPgtype(row.endTime),
		activity.LifecycleStatus(row.status),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("stored activity is invalid", err)
	}
	return act, nil
}

func (r *ActivityReadStore) FindViewByID(ctx context.Context, id int64) (*queries.ActivityView, error) {
	row, err := r.scanByID(ctx, getActivitySQL, id)
	if err != nil {
		return nil, err
	}
	return &queries.ActivityView{
		ID:        row.id,
		Name:      row.name,
		Capacity:  int(row.capacity),
		StartTime: pgconv.TimeFromPgtype(row.startTime),
		EndTime:   pgconv.TimeFromPgtype(row.endTime),
		Status:    row.status,
	}, nil
}

func (r *ActivityReadStore) CountLiveBookings(ctx context.Context, activityID int64) (int, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countLiveBookingsSQL, activityID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count live bookings", err)
	}
	return int(n), nil
}

// EndedActivityIDs lists activities whose end time falls in [from, to).
func (r *ActivityReadStore) EndedActivityIDs(ctx context.Context, from, to time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, listEndedActivityIDsSQL, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ended activities", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan ended activities", err)
	}
	return ids, nil
}
