package queries

import (
	"time"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	ActivityID  int64      `json:"activity_id"`
	Status      string     `json:"status"`
	AttendedAt  *time.Time `json:"attended_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ActivityView represents read-optimized activity data
type ActivityView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

// Availability is derived from live booking rows at read time.
type Availability struct {
	ActivityID int64 `json:"activity_id"`
	Capacity   int   `json:"capacity"`
	Live       int   `json:"live"`
	Remaining  int   `json:"remaining"`
}

type HistoryItem struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	ActivityID     int64     `json:"activity_id"`
	ActivityName   string    `json:"activity_name"`
	BookingID      int64     `json:"booking_id"`
	Outcome        string    `json:"outcome"`
	ParticipatedAt time.Time `json:"participated_at"`
}

type HistoryFilters struct {
	Outcome *string
	From    *time.Time
	To      *time.Time
}

type HistoryPage struct {
	Items []*HistoryItem `json:"items"`
	Total int            `json:"total"`
}

type HistoryStats struct {
	UserID    int64 `json:"user_id"`
	Completed int   `json:"completed"`
	Cancelled int   `json:"cancelled"`
	NoShow    int   `json:"no_show"`
	Total     int   `json:"total"`
}
