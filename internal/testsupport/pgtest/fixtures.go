//go:build integration

package pgtest

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type ActivityFixture struct {
	Name      string
	Capacity  int
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// InsertActivity writes an activity row and returns its id. Zero fields get
// an active one-hour activity starting in a day.
func InsertActivity(t *testing.T, pool *pgxpool.Pool, a ActivityFixture) int64 {
	t.Helper()
	if a.Name == "" {
		a.Name = "Morning Yoga"
	}
	if a.Capacity == 0 {
		a.Capacity = 3
	}
	if a.StartTime.IsZero() {
		a.StartTime = time.Now().Add(24 * time.Hour)
	}
	if a.EndTime.IsZero() {
		a.EndTime = a.StartTime.Add(time.Hour)
	}
	if a.Status == "" {
		a.Status = "active"
	}

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO activities (name, capacity, start_time, end_time, status) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.Name, a.Capacity, a.StartTime, a.EndTime, a.Status,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertBooking writes a booking row directly, bypassing admission.
func InsertBooking(t *testing.T, pool *pgxpool.Pool, userID, activityID int64, status string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO bookings (user_id, activity_id, status) VALUES ($1, $2, $3) RETURNING id`,
		userID, activityID, status,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func CountRows(t *testing.T, pool *pgxpool.Pool, sql string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), sql, args...).Scan(&n))
	return n
}
