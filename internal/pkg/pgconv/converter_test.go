//go:build unit

package pgconv_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"activity-ledger/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimePtrRoundTrip(t *testing.T) {
	t.Run("null timestamp maps to nil", func(t *testing.T) {
		assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))
		assert.False(t, pgconv.TimePtrToPgtype(nil).Valid)
	})

	t.Run("valid timestamp keeps its value", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		got := pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(&now))
		require.NotNil(t, got)
		assert.True(t, now.Equal(*got))
	})
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(sql.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(fmt.Errorf("scan booking: %w", pgx.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(errors.New("connection refused")))
}
