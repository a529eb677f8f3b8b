//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"activity-ledger/internal/infra"
	"activity-ledger/internal/mock/queriesmock"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/testsupport/builder"
	"activity-ledger/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, errors.New("no rows in result set"), infra.KindNotFound)
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	view := builder.NewBookingBuilder(now).BuildView()

	testCases := []struct {
		name   string
		userID int64
		setup  func(m *queriesmock.MockBookingReadStore)
		errIs  error
	}{
		{
			name:   "owner sees the booking",
			userID: view.UserID,
			setup: func(m *queriesmock.MockBookingReadStore) {
				m.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
			},
		},
		{
			name:   "other user gets not found",
			userID: view.UserID + 1,
			setup: func(m *queriesmock.MockBookingReadStore) {
				m.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
			},
			errIs: errs.ErrBookingNotFound,
		},
		{
			name:   "missing row",
			userID: view.UserID,
			setup: func(m *queriesmock.MockBookingReadStore) {
				m.EXPECT().FindByID(gomock.Any(), view.ID).Return(nil, notFound("booking not found"))
			},
			errIs: errs.ErrBookingNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockBookingReadStore(ctrl)
			tc.setup(store)
			q := queries.NewBookingQueries(store, queriesmock.NewMockActivityReadStore(ctrl), time.Second)

			got, err := q.GetBooking(ctx, tc.userID, view.ID)

			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(view, got); diff != "" {
				t.Errorf("GetBooking() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListBookingsByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("limit defaults and total is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		items := []*queries.BookingView{builder.NewBookingBuilder(now).BuildView()}
		store.EXPECT().FindByUser(gomock.Any(), int64(7), 0, queries.DefaultListLimit).Return(items, nil)
		store.EXPECT().CountByUser(gomock.Any(), int64(7)).Return(41, nil)
		q := queries.NewBookingQueries(store, queriesmock.NewMockActivityReadStore(ctrl), time.Second)

		got, total, err := q.ListBookingsByUser(ctx, 7, queries.Page{})

		require.NoError(t, err)
		assert.Equal(t, items, got)
		assert.Equal(t, 41, total)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		store.EXPECT().FindByUser(gomock.Any(), int64(7), 40, queries.MaxListLimit).Return(nil, nil)
		store.EXPECT().CountByUser(gomock.Any(), int64(7)).Return(0, nil)
		q := queries.NewBookingQueries(store, queriesmock.NewMockActivityReadStore(ctrl), time.Second)

		_, _, err := q.ListBookingsByUser(ctx, 7, queries.Page{Offset: 40, Limit: 10_000})

		require.NoError(t, err)
	})

	t.Run("negative offset is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := queries.NewBookingQueries(queriesmock.NewMockBookingReadStore(ctrl), queriesmock.NewMockActivityReadStore(ctrl), time.Second)

		_, _, err := q.ListBookingsByUser(ctx, 7, queries.Page{Offset: -1})

		require.ErrorIs(t, err, queries.ErrInvalidPage)
	})
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()
	act := &queries.ActivityView{ID: 1, Name: "Morning Yoga", Capacity: 3, StartTime: now, EndTime: now.Add(time.Hour), Status: "active"}

	testCases := []struct {
		name     string
		live     int
		expected queries.Availability
	}{
		{name: "empty", live: 0, expected: queries.Availability{ActivityID: 1, Capacity: 3, Live: 0, Remaining: 3}},
		{name: "partially booked", live: 2, expected: queries.Availability{ActivityID: 1, Capacity: 3, Live: 2, Remaining: 1}},
		{name: "full", live: 3, expected: queries.Availability{ActivityID: 1, Capacity: 3, Live: 3, Remaining: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			activities := queriesmock.NewMockActivityReadStore(ctrl)
			activities.EXPECT().FindViewByID(gomock.Any(), int64(1)).Return(act, nil)
			activities.EXPECT().CountLiveBookings(gomock.Any(), int64(1)).Return(tc.live, nil)
			q := queries.NewBookingQueries(queriesmock.NewMockBookingReadStore(ctrl), activities, time.Second)

			got, err := q.GetAvailability(ctx, 1)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, *got)
		})
	}

	t.Run("unknown activity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		activities := queriesmock.NewMockActivityReadStore(ctrl)
		activities.EXPECT().FindViewByID(gomock.Any(), int64(404)).Return(nil, notFound("activity not found"))
		q := queries.NewBookingQueries(queriesmock.NewMockBookingReadStore(ctrl), activities, time.Second)

		_, err := q.GetAvailability(ctx, 404)

		require.ErrorIs(t, err, queries.ErrActivityNotFound)
	})
}
