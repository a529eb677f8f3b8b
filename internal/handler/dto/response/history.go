package response

import (
	"time"

	"activity-ledger/internal/usecase/commands"
	"activity-ledger/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type HistoryItemResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	ActivityID     int64     `json:"activity_id"`
	ActivityName   string    `json:"activity_name,omitempty"`
	BookingID      int64     `json:"booking_id"`
	Outcome        string    `json:"outcome"`
	ParticipatedAt time.Time `json:"participated_at"`
}

type HistoryListResponse struct {
	Items []*HistoryItemResponse `json:"items"`
	Total int                    `json:"total"`
}

type HistoryStatsResponse struct {
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	NoShow    int `json:"no_show"`
	Total     int `json:"total"`
}

type RecordOutcomeResponse struct {
	Record   *HistoryItemResponse `json:"record"`
	Inserted bool                 `json:"inserted"`
}

type ReconcileFailureResponse struct {
	BookingID int64  `json:"booking_id"`
	Error     string `json:"error"`
}

type ReconcileResponse struct {
	ActivityID int64                      `json:"activity_id"`
	Inserted   int                        `json:"inserted"`
	Updated    int                        `json:"updated"`
	Failures   []ReconcileFailureResponse `json:"failures"`
}

func FromHistoryItems(items []*queries.HistoryItem) ([]*HistoryItemResponse, error) {
	res := make([]*HistoryItemResponse, 0, len(items))
	if err := copier.Copy(&res, items); err != nil {
		return nil, err
	}
	return res, nil
}

func FromHistoryPage(p *queries.HistoryPage) (*HistoryListResponse, error) {
	items, err := FromHistoryItems(p.Items)
	if err != nil {
		return nil, err
	}
	return &HistoryListResponse{Items: items, Total: p.Total}, nil
}

func FromHistoryStats(s *queries.HistoryStats) *HistoryStatsResponse {
	var res HistoryStatsResponse
	_ = copier.Copy(&res, s)
	return &res
}

// copier converts history.Outcome into the plain string field.
func FromRecordOutcome(r *commands.RecordOutcomeResult) (*RecordOutcomeResponse, error) {
	var item HistoryItemResponse
	if err := copier.Copy(&item, r.Record); err != nil {
		return nil, err
	}
	return &RecordOutcomeResponse{Record: &item, Inserted: r.Inserted}, nil
}

func FromReconcileResult(r *commands.ReconcileResult) *ReconcileResponse {
	failures := make([]ReconcileFailureResponse, 0, len(r.Failures))
	for _, f := range r.Failures {
		failures = append(failures, ReconcileFailureResponse{BookingID: f.BookingID, Error: f.Err.Error()})
	}
	return &ReconcileResponse{
		ActivityID: r.ActivityID,
		Inserted:   r.Inserted,
		Updated:    r.Updated,
		Failures:   failures,
	}
}
