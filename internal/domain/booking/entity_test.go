//go:build unit

package booking_test

import (
	"testing"
	"time"

	"activity-ledger/internal/domain/activity"
	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/testsupport/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func TestAdmit(t *testing.T) {
	testCases := []struct {
		name      string
		activity  *activity.Activity
		hasLive   bool
		liveCount int
		errIs     error
	}{
		{
			name:     "success: empty activity",
			activity: builder.NewActivityBuilder(now).MustBuild(),
		},
		{
			name:      "success: one slot left",
			activity:  builder.NewActivityBuilder(now).WithCapacity(3).MustBuild(),
			liveCount: 2,
		},
		{
			name:     "error: cancelled activity",
			activity: builder.NewActivityBuilder(now).WithStatus(activity.StatusCancelled).MustBuild(),
			errIs:    errs.ErrActivityNotBookable,
		},
		{
			name:     "error: completed activity",
			activity: builder.NewActivityBuilder(now).WithStatus(activity.StatusCompleted).MustBuild(),
			errIs:    errs.ErrActivityNotBookable,
		},
		{
			name:     "error: activity already started",
			activity: builder.NewActivityBuilder(now).WithWindow(now.Add(-time.Minute), time.Hour).MustBuild(),
			errIs:    errs.ErrActivityNotBookable,
		},
		{
			name:     "error: activity starts exactly now",
			activity: builder.NewActivityBuilder(now).WithWindow(now, time.Hour).MustBuild(),
			errIs:    errs.ErrActivityNotBookable,
		},
		{
			name:     "error: duplicate live booking",
			activity: builder.NewActivityBuilder(now).MustBuild(),
			hasLive:  true,
			errIs:    errs.ErrDuplicateBooking,
		},
		{
			name:      "error: full",
			activity:  builder.NewActivityBuilder(now).WithCapacity(2).MustBuild(),
			liveCount: 2,
			errIs:     errs.ErrActivityFull,
		},
		{
			name:      "error: duplicate is reported before full",
			activity:  builder.NewActivityBuilder(now).WithCapacity(1).MustBuild(),
			hasLive:   true,
			liveCount: 1,
			errIs:     errs.ErrDuplicateBooking,
		},
		{
			name:      "error: not bookable is reported before full",
			activity:  builder.NewActivityBuilder(now).WithCapacity(1).WithStatus(activity.StatusCancelled).MustBuild(),
			liveCount: 1,
			errIs:     errs.ErrActivityNotBookable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := booking.Admit(booking.AdmissionInput{
				UserID:         7,
				Activity:       tc.activity,
				HasLiveBooking: tc.hasLive,
				LiveCount:      tc.liveCount,
				Now:            now,
			})

			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusPending, b.Status())
			assert.Equal(t, int64(7), b.UserID())
			assert.Equal(t, tc.activity.ID(), b.ActivityID())
			assert.Equal(t, now, b.CreatedAt())
			assert.True(t, b.IsLive())
		})
	}
}

func TestBooking_Cancel(t *testing.T) {
	testCases := []struct {
		name    string
		status  booking.Status
		actorID int64
		errIs   error
	}{
		{name: "pending to cancelled", status: booking.StatusPending, actorID: 7},
		{name: "confirmed to cancelled", status: booking.StatusConfirmed, actorID: 7},
		{name: "already cancelled", status: booking.StatusCancelled, actorID: 7, errIs: errs.ErrAlreadyCancelled},
		{name: "not owner", status: booking.StatusPending, actorID: 8, errIs: errs.ErrBookingNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder(now).WithUser(7).WithStatus(tc.status).BuildDomain()

			err := b.Cancel(tc.actorID, now)

			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.status, b.Status(), "status must not change on failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusCancelled, b.Status())
			require.NotNil(t, b.CancelledAt())
			assert.Equal(t, now, *b.CancelledAt())
			assert.False(t, b.IsLive())
		})
	}

	t.Run("cancel after the activity started is allowed", func(t *testing.T) {
		b := builder.NewBookingBuilder(now).WithStatus(booking.StatusConfirmed).BuildDomain()
		require.NoError(t, b.Cancel(b.UserID(), now.Add(72*time.Hour)))
	})
}

func TestBooking_ConfirmByAdmin(t *testing.T) {
	upcoming := builder.NewActivityBuilder(now).MustBuild()
	ended := builder.NewActivityBuilder(now).WithWindow(now.Add(-3*time.Hour), time.Hour).MustBuild()

	testCases := []struct {
		name     string
		status   booking.Status
		activity *activity.Activity
		errIs    error
	}{
		{name: "pending to confirmed", status: booking.StatusPending, activity: upcoming},
		{name: "already confirmed", status: booking.StatusConfirmed, activity: upcoming, errIs: errs.ErrInvalidState},
		{name: "cancelled", status: booking.StatusCancelled, activity: upcoming, errIs: errs.ErrInvalidState},
		{name: "activity ended", status: booking.StatusPending, activity: ended, errIs: errs.ErrInvalidState},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder(now).WithStatus(tc.status).BuildDomain()

			err := b.ConfirmByAdmin(tc.activity, now)

			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.status, b.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusConfirmed, b.Status())
			assert.Nil(t, b.AttendedAt(), "admin confirmation is not attendance")
		})
	}
}

func TestBooking_ConfirmAttendance(t *testing.T) {
	running := builder.NewActivityBuilder(now).WithWindow(now.Add(-30*time.Minute), time.Hour).MustBuild()
	upcoming := builder.NewActivityBuilder(now).MustBuild()
	ended := builder.NewActivityBuilder(now).WithWindow(now.Add(-3*time.Hour), time.Hour).MustBuild()

	testCases := []struct {
		name     string
		booking  *builder.BookingBuilder
		actorID  int64
		activity *activity.Activity
		errIs    error
	}{
		{name: "pending booking attends", booking: builder.NewBookingBuilder(now), actorID: 7, activity: running},
		{name: "admin-confirmed booking attends", booking: builder.NewBookingBuilder(now).WithStatus(booking.StatusConfirmed), actorID: 7, activity: running},
		{name: "before start", booking: builder.NewBookingBuilder(now), actorID: 7, activity: upcoming, errIs: errs.ErrActivityNotStarted},
		{name: "not owner", booking: builder.NewBookingBuilder(now), actorID: 99, activity: running, errIs: errs.ErrBookingNotFound},
		{name: "cancelled", booking: builder.NewBookingBuilder(now).WithStatus(booking.StatusCancelled), actorID: 7, activity: running, errIs: errs.ErrAlreadyCancelled},
		{name: "already attended", booking: builder.NewBookingBuilder(now).Attended(now.Add(-time.Minute)), actorID: 7, activity: running, errIs: errs.ErrInvalidState},
		{name: "after end", booking: builder.NewBookingBuilder(now), actorID: 7, activity: ended, errIs: errs.ErrInvalidState},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.booking.WithUser(7).BuildDomain()
			before := b.Status()

			err := b.ConfirmAttendance(tc.actorID, tc.activity, now)

			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, before, b.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusConfirmed, b.Status())
			require.NotNil(t, b.AttendedAt())
			assert.Equal(t, now, *b.AttendedAt())
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := booking.ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, s)

	_, err = booking.ParseStatus("no-show")
	assert.ErrorIs(t, err, booking.ErrUnknownStatus)
}
