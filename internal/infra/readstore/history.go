package readstore

import (
	"context"

	"activity-ledger/internal/infra"
	"activity-ledger/internal/infra/db"
	"activity-ledger/internal/pkg/pgconv"
	"activity-ledger/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const historyFilterClause = `
WHERE h.user_id = $1
  AND ($2::text IS NULL OR h.outcome_status = $2)
  AND ($3::timestamptz IS NULL OR h.participated_at >= $3)
  AND ($4::timestamptz IS NULL OR h.participated_at <= $4)`

const (
	listHistoryByUserSQL = `
SELECT h.id, h.user_id, h.activity_id, a.name, h.booking_id, h.outcome_status, h.participated_at
FROM activity_history h
JOIN activities a ON a.id = h.activity_id` + historyFilterClause + `
ORDER BY h.participated_at DESC, h.id DESC
OFFSET $5 LIMIT $6`

	countHistoryByUserSQL = `
SELECT count(*)
FROM activity_history h` + historyFilterClause

	historyStatsByUserSQL = `
SELECT
    count(*) FILTER (WHERE outcome_status = 'completed'),
    count(*) FILTER (WHERE outcome_status = 'cancelled'),
    count(*) FILTER (WHERE outcome_status = 'no-show'),
    count(*)
FROM activity_history
WHERE user_id = $1`

	listHistoryByUserAndActivitySQL = `
SELECT h.id, h.user_id, h.activity_id, a.name, h.booking_id, h.outcome_status, h.participated_at
FROM activity_history h
JOIN activities a ON a.id = h.activity_id
WHERE h.user_id = $1 AND h.activity_id = $2
ORDER BY h.participated_at DESC, h.id DESC`
)

type HistoryReadStore struct {
	db db.DBTX
}

func NewHistoryReadStore(db db.DBTX) *HistoryReadStore {
	return &HistoryReadStore{db: db}
}

func filterArgs(userID int64, f queries.HistoryFilters) []any {
	return []any{
		userID,
		pgconv.StringPtrToPgtype(f.Outcome),
		pgconv.TimePtrToPgtype(f.From),
		pgconv.TimePtrToPgtype(f.To),
	}
}

func (r *HistoryReadStore) FindByUser(ctx context.Context, userID int64, filters queries.HistoryFilters, offset, limit int) ([]*queries.HistoryItem, error) {
	args := append(filterArgs(userID, filters), offset, limit)
	rows, err := r.db.Query(ctx, listHistoryByUserSQL, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list history by user", err)
	}
	items, err := collectHistoryItems(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan history by user", err)
	}
	return items, nil
}

func (r *HistoryReadStore) CountByUser(ctx context.Context, userID int64, filters queries.HistoryFilters) (int, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countHistoryByUserSQL, filterArgs(userID, filters)...).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count history by user", err)
	}
	return int(n), nil
}

func (r *HistoryReadStore) StatsByUser(ctx context.Context, userID int64) (*queries.HistoryStats, error) {
	var completed, cancelled, noShow, total int64
	err := r.db.QueryRow(ctx, historyStatsByUserSQL, userID).Scan(&completed, &cancelled, &noShow, &total)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get history stats", err)
	}
	return &queries.HistoryStats{
		UserID:    userID,
		Completed: int(completed),
		Cancelled: int(cancelled),
		NoShow:    int(noShow),
		Total:     int(total),
	}, nil
}

func (r *HistoryReadStore) FindByUserAndActivity(ctx context.Context, userID, activityID int64) ([]*queries.HistoryItem, error) {
	rows, err := r.db.Query(ctx, listHistoryByUserAndActivitySQL, userID, activityID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list history for activity", err)
	}
	items, err := collectHistoryItems(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan history for activity", err)
	}
	return items, nil
}

func collectHistoryItems(rows pgx.Rows) ([]*queries.HistoryItem, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.HistoryItem, error) {
		var (
			item           queries.HistoryItem
			participatedAt pgtype.Timestamptz
		)
		if err := row.Scan(&item.ID, &item.UserID, &item.ActivityID, &item.ActivityName, &item.BookingID, &item.Outcome, &participatedAt); err != nil {
			return nil, err
		}
		item.ParticipatedAt = pgconv.TimeFromPgtype(participatedAt)
		return &item, nil
	})
}
