package commands

import (
	"context"
	"encoding/json"
	"time"

	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/domain/history"
	"activity-ledger/internal/usecase/shared"
)

const (
	KindBookingEvent = "booking_event"
	KindHistoryEvent = "history_event"

	TopicBookingCreated   = "booking.created"
	TopicBookingCancelled = "booking.cancelled"
	TopicBookingConfirmed = "booking.confirmed"
	TopicBookingAttended  = "booking.attended"
	TopicHistoryRecorded  = "history.recorded"
)

type BookingEvent struct {
	BookingID  int64      `json:"booking_id"`
	UserID     int64      `json:"user_id"`
	ActivityID int64      `json:"activity_id"`
	Status     string     `json:"status"`
	AttendedAt *time.Time `json:"attended_at,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type HistoryEvent struct {
	HistoryID      int64     `json:"history_id"`
	UserID         int64     `json:"user_id"`
	ActivityID     int64     `json:"activity_id"`
	BookingID      int64     `json:"booking_id"`
	Outcome        string    `json:"outcome"`
	Inserted       bool      `json:"inserted"`
	ParticipatedAt time.Time `json:"participated_at"`
}

func newBookingEvent(b *booking.Booking, now time.Time) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID(),
		UserID:     b.UserID(),
		ActivityID: b.ActivityID(),
		Status:     b.Status().String(),
		AttendedAt: b.AttendedAt(),
		OccurredAt: now,
	}
}

func newHistoryEvent(rec *history.Record, inserted bool) HistoryEvent {
	return HistoryEvent{
		HistoryID:      rec.ID,
		UserID:         rec.UserID,
		ActivityID:     rec.ActivityID,
		BookingID:      rec.BookingID,
		Outcome:        rec.Outcome.String(),
		Inserted:       inserted,
		ParticipatedAt: rec.ParticipatedAt,
	}
}

// enqueue writes an outbox row in the caller's transaction so the event is
// published if and only if the state change commits.
func enqueue(ctx context.Context, tx shared.Tx, kind, topic string, payload any, runAt time.Time) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), kind, topic, data, runAt)
}
