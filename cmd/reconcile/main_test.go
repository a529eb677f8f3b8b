//go:build unit

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"activity-ledger/internal/mock/commandsmock"
	"activity-ledger/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPickLookback(t *testing.T) {
	assert.Equal(t, 24*time.Hour, pickLookback(0, 24*time.Hour))
	assert.Equal(t, time.Hour, pickLookback(time.Hour, 24*time.Hour))
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		summary  *commands.ReconcileSummary
		err      error
		expected int
	}{
		{
			name: "clean run",
			summary: &commands.ReconcileSummary{
				Activities: []*commands.ReconcileResult{{ActivityID: 1, Inserted: 3}},
				Errors:     map[int64]error{},
			},
			expected: 0,
		},
		{
			name: "booking failure",
			summary: &commands.ReconcileSummary{
				Activities: []*commands.ReconcileResult{{ActivityID: 1, Failures: []commands.ReconcileFailure{{BookingID: 4, Err: errors.New("x")}}}},
				Errors:     map[int64]error{},
			},
			expected: 2,
		},
		{
			name:     "activity failure",
			summary:  &commands.ReconcileSummary{Errors: map[int64]error{2: errors.New("x")}},
			expected: 2,
		},
		{name: "listing failed", err: errors.New("db down"), expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			history := commandsmock.NewMockHistoryCommands(gomock.NewController(t))
			history.EXPECT().ReconcileEnded(gomock.Any(), 6*time.Hour).Return(tc.summary, tc.err)

			assert.Equal(t, tc.expected, run(ctx, history, 6*time.Hour))
		})
	}
}
