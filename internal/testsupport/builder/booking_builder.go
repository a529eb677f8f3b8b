//go:build unit || integration

package builder

import (
	"time"

	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/usecase/queries"
)

type BookingBuilder struct {
	ID          int64
	UserID      int64
	ActivityID  int64
	Status      booking.Status
	AttendedAt  *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewBookingBuilder(now time.Time) *BookingBuilder {
	return &BookingBuilder{
		ID:         100,
		UserID:     7,
		ActivityID: 1,
		Status:     booking.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithUser(userID int64) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) Attended(t time.Time) *BookingBuilder {
	b.Status = booking.StatusConfirmed
	b.AttendedAt = &t
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.Reconstruct(b.ID, b.UserID, b.ActivityID, b.Status, b.AttendedAt, b.CancelledAt, b.CreatedAt, b.UpdatedAt)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:          b.ID,
		UserID:      b.UserID,
		ActivityID:  b.ActivityID,
		Status:      b.Status.String(),
		AttendedAt:  b.AttendedAt,
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
