package booking

import (
	"time"

	"activity-ledger/internal/domain/activity"
	"activity-ledger/internal/pkg/errs"
)

var ErrUnknownStatus = errs.New("unknown booking status")

type Booking struct {
	id          int64
	userID      int64
	activityID  int64
	status      Status
	attendedAt  *time.Time
	cancelledAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// AdmissionInput is everything the capacity decision needs. LiveCount and
// HasLiveBooking must be read from committed booking rows in the same
// transaction that will insert the new booking.
type AdmissionInput struct {
	UserID         int64
	Activity       *activity.Activity
	HasLiveBooking bool
	LiveCount      int
	Now            time.Time
}

// Admit decides whether a new pending booking may be created. The checks run
// in a fixed order so that each failure maps to exactly one error kind.
// Activity must be set; a missing activity is reported by the caller.
func Admit(in AdmissionInput) (*Booking, error) {
	if err := in.Activity.CheckBookable(in.Now); err != nil {
		return nil, err
	}
	if in.HasLiveBooking {
		return nil, errs.Wrapf(errs.ErrDuplicateBooking, "user %d, activity %d", in.UserID, in.Activity.ID())
	}
	if in.LiveCount >= in.Activity.Capacity() {
		return nil, errs.Wrapf(errs.ErrActivityFull, "activity %d: %d/%d", in.Activity.ID(), in.LiveCount, in.Activity.Capacity())
	}

	return &Booking{
		userID:     in.UserID,
		activityID: in.Activity.ID(),
		status:     StatusPending,
		createdAt:  in.Now,
		updatedAt:  in.Now,
	}, nil
}

func Reconstruct(
	id, userID, activityID int64,
	status Status,
	attendedAt, cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		userID:      userID,
		activityID:  activityID,
		status:      status,
		attendedAt:  attendedAt,
		cancelledAt: cancelledAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Cancel moves a live booking owned by actorID to cancelled. Not-owned is
// reported as not found so callers cannot probe other users' bookings.
// There is no time restriction: a booking may be cancelled before or after
// the activity starts.
func (b *Booking) Cancel(actorID int64, now time.Time) error {
	if b.userID != actorID {
		return errs.Wrapf(errs.ErrBookingNotFound, "booking %d", b.id)
	}
	if b.status == StatusCancelled {
		return errs.Wrapf(errs.ErrAlreadyCancelled, "booking %d", b.id)
	}
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}

// ConfirmByAdmin is legal only from pending and only while the activity has
// not ended.
func (b *Booking) ConfirmByAdmin(act *activity.Activity, now time.Time) error {
	if b.status != StatusPending {
		return errs.Wrapf(errs.ErrInvalidState, "booking %d: confirm from %s", b.id, b.status)
	}
	if act.HasEnded(now) {
		return errs.Wrapf(errs.ErrInvalidState, "booking %d: activity %d already ended", b.id, act.ID())
	}
	b.status = StatusConfirmed
	b.updatedAt = now
	return nil
}

// ConfirmAttendance records that the owner attended. It is accepted between
// the activity's start and end.
func (b *Booking) ConfirmAttendance(actorID int64, act *activity.Activity, now time.Time) error {
	if b.userID != actorID {
		return errs.Wrapf(errs.ErrBookingNotFound, "booking %d", b.id)
	}
	if b.status == StatusCancelled {
		return errs.Wrapf(errs.ErrAlreadyCancelled, "booking %d", b.id)
	}
	if !act.HasStarted(now) {
		return errs.Wrapf(errs.ErrActivityNotStarted, "activity %d starts at %s", act.ID(), act.StartTime().Format(time.RFC3339))
	}
	if b.attendedAt != nil {
		return errs.Wrapf(errs.ErrInvalidState, "booking %d: attendance already confirmed", b.id)
	}
	if act.HasEnded(now) {
		return errs.Wrapf(errs.ErrInvalidState, "booking %d: activity %d already ended", b.id, act.ID())
	}
	b.status = StatusConfirmed
	b.attendedAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) IsLive() bool {
	return b.status.IsLive()
}

func (b *Booking) Attended() bool {
	return b.attendedAt != nil
}

func (b *Booking) ID() int64               { return b.id }
func (b *Booking) UserID() int64           { return b.userID }
func (b *Booking) ActivityID() int64       { return b.activityID }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) AttendedAt() *time.Time  { return b.attendedAt }
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
