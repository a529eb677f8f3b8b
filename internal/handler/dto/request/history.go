package request

import (
	"time"

	"activity-ledger/internal/usecase/queries"
)

type HistoryQuery struct {
	ListQuery
	Outcome string     `form:"outcome" binding:"omitempty,oneof=completed cancelled no-show"`
	From    *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To      *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

func (q HistoryQuery) Filters() queries.HistoryFilters {
	f := queries.HistoryFilters{From: q.From, To: q.To}
	if q.Outcome != "" {
		outcome := q.Outcome
		f.Outcome = &outcome
	}
	return f
}

type RecordOutcomeRequest struct {
	UserID     int64  `json:"user_id" binding:"required,min=1"`
	ActivityID int64  `json:"activity_id" binding:"required,min=1"`
	BookingID  int64  `json:"booking_id" binding:"required,min=1"`
	Outcome    string `json:"outcome" binding:"required"`
}
