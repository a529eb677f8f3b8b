//go:build unit || integration

package builder

import (
	"time"

	"activity-ledger/internal/domain/activity"
)

type ActivityBuilder struct {
	ID        int64
	Name      string
	Capacity  int
	StartTime time.Time
	EndTime   time.Time
	Status    activity.LifecycleStatus
}

// NewActivityBuilder returns an active activity that starts one day after now.
func NewActivityBuilder(now time.Time) *ActivityBuilder {
	start := now.Add(24 * time.Hour)
	return &ActivityBuilder{
		ID:        1,
		Name:      "Morning Yoga",
		Capacity:  2,
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Status:    activity.StatusActive,
	}
}

func (b *ActivityBuilder) With(mutate func(*ActivityBuilder)) *ActivityBuilder {
	mutate(b)
	return b
}

func (b *ActivityBuilder) WithCapacity(c int) *ActivityBuilder {
	b.Capacity = c
	return b
}

func (b *ActivityBuilder) WithStatus(s activity.LifecycleStatus) *ActivityBuilder {
	b.Status = s
	return b
}

// WithWindow moves the activity so it runs from start for d.
func (b *ActivityBuilder) WithWindow(start time.Time, d time.Duration) *ActivityBuilder {
	b.StartTime = start
	b.EndTime = start.Add(d)
	return b
}

func (b *ActivityBuilder) BuildDomain() (*activity.Activity, error) {
	return activity.Reconstruct(b.ID, b.Name, b.Capacity, b.StartTime, b.EndTime, b.Status)
}

// MustBuild panics on invalid input; use it only with fixtures known to be valid.
func (b *ActivityBuilder) MustBuild() *activity.Activity {
	a, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return a
}
