package repository

import (
	"context"

	"activity-ledger/internal/domain/history"
	"activity-ledger/internal/infra"
	"activity-ledger/internal/infra/db"
	"activity-ledger/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// xmax is zero only for a row version created by an INSERT in this statement.
const upsertHistorySQL = `
INSERT INTO activity_history (user_id, activity_id, booking_id, outcome_status, participated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, activity_id, booking_id)
DO UPDATE SET outcome_status = EXCLUDED.outcome_status,
              participated_at = EXCLUDED.participated_at
RETURNING id, outcome_status, participated_at, (xmax = 0) AS inserted`

type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) Upsert(ctx context.Context, tx db.DBTX, rec *history.Record) (*history.Record, bool, error) {
	var (
		id             int64
		outcome        string
		participatedAt pgtype.Timestamptz
		inserted       bool
	)
	err := tx.QueryRow(ctx, upsertHistorySQL,
		rec.UserID, rec.ActivityID, rec.BookingID, rec.Outcome.String(), pgconv.TimeToPgtype(rec.ParticipatedAt),
	).Scan(&id, &outcome, &participatedAt, &inserted)
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to upsert activity history", err)
	}

	stored := *rec
	stored.ID = id
	stored.Outcome = history.Outcome(outcome)
	stored.ParticipatedAt = pgconv.TimeFromPgtype(participatedAt)
	return &stored, inserted, nil
}
