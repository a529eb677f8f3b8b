package request

import "activity-ledger/internal/usecase/queries"

type CreateBookingRequest struct {
	ActivityID int64 `json:"activity_id" binding:"required,min=1"`
}

type ListQuery struct {
	Offset int `form:"offset" binding:"min=0"`
	Limit  int `form:"limit" binding:"min=0,max=200"`
}

func (q ListQuery) Page() queries.Page {
	return queries.Page{Offset: q.Offset, Limit: q.Limit}
}
