// Package activity is the read-only view of the activity catalog that the
// booking core consumes. Activities are owned by another service; nothing
// here writes them.
package activity

import (
	"time"

	"activity-ledger/internal/pkg/errs"
)

type LifecycleStatus string

const (
	StatusActive    LifecycleStatus = "active"
	StatusCancelled LifecycleStatus = "cancelled"
	StatusCompleted LifecycleStatus = "completed"
)

func (s LifecycleStatus) String() string {
	return string(s)
}

func (s LifecycleStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

var ErrInvalidActivity = errs.New("invalid activity")

type Activity struct {
	id        int64
	name      string
	capacity  int
	startTime time.Time
	endTime   time.Time
	status    LifecycleStatus
}

func Reconstruct(id int64, name string, capacity int, startTime, endTime time.Time, status LifecycleStatus) (*Activity, error) {
	if capacity <= 0 {
		return nil, errs.Wrapf(ErrInvalidActivity, "activity %d: capacity must be positive, got %d", id, capacity)
	}
	if !endTime.After(startTime) {
		return nil, errs.Wrapf(ErrInvalidActivity, "activity %d: end time must be after start time", id)
	}
	if !status.IsValid() {
		return nil, errs.Wrapf(ErrInvalidActivity, "activity %d: unknown lifecycle status %q", id, status)
	}
	return &Activity{
		id:        id,
		name:      name,
		capacity:  capacity,
		startTime: startTime,
		endTime:   endTime,
		status:    status,
	}, nil
}

// CheckBookable applies the lifecycle and timing preconditions of admission.
// Capacity and duplicate checks need booking rows and live in booking.Admit.
func (a *Activity) CheckBookable(now time.Time) error {
	if a.status != StatusActive {
		return errs.Wrapf(errs.ErrActivityNotBookable, "activity %d is %s", a.id, a.status)
	}
	if !a.startTime.After(now) {
		return errs.Wrapf(errs.ErrActivityNotBookable, "activity %d already started", a.id)
	}
	return nil
}

func (a *Activity) HasStarted(now time.Time) bool {
	return !now.Before(a.startTime)
}

func (a *Activity) HasEnded(now time.Time) bool {
	return !now.Before(a.endTime)
}

func (a *Activity) ID() int64               { return a.id }
func (a *Activity) Name() string            { return a.name }
func (a *Activity) Capacity() int           { return a.capacity }
func (a *Activity) StartTime() time.Time    { return a.startTime }
func (a *Activity) EndTime() time.Time      { return a.endTime }
func (a *Activity) Status() LifecycleStatus { return a.status }
