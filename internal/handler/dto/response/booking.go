package response

import (
	"time"

	"activity-ledger/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	ActivityID  int64      `json:"activity_id"`
	Status      string     `json:"status"`
	AttendedAt  *time.Time `json:"attended_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type BookingListResponse struct {
	Items  []*BookingResponse `json:"items"`
	Total  int                `json:"total"`
	Offset int                `json:"offset"`
	Limit  int                `json:"limit"`
}

type AvailabilityResponse struct {
	ActivityID int64 `json:"activity_id"`
	Capacity   int   `json:"capacity"`
	Live       int   `json:"live"`
	Remaining  int   `json:"remaining"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromBookingViews(views []*queries.BookingView, total int, page queries.Page) (*BookingListResponse, error) {
	items := make([]*BookingResponse, 0, len(views))
	if err := copier.Copy(&items, views); err != nil {
		return nil, err
	}
	return &BookingListResponse{Items: items, Total: total, Offset: page.Offset, Limit: page.Limit}, nil
}

func FromAvailability(a *queries.Availability) *AvailabilityResponse {
	return &AvailabilityResponse{
		ActivityID: a.ActivityID,
		Capacity:   a.Capacity,
		Live:       a.Live,
		Remaining:  a.Remaining,
	}
}
