//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"activity-ledger/internal/infra/ratelimit"
	"activity-ledger/internal/pkg/clock"
	"activity-ledger/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestTokenBucket_Allow(t *testing.T) {
	rdb := startRedis(t)
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC))
	cfg := config.RateLimitConfig{
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            time.Minute,
		Prefix:         "rl:test",
	}
	bucket := ratelimit.NewTokenBucket(rdb, cfg, clk)

	for i := 0; i < 2; i++ {
		ok, _, err := bucket.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}

	ok, retry, err := bucket.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Second, retry)

	t.Run("buckets are per key", func(t *testing.T) {
		ok, _, err := bucket.Allow(ctx, "user:2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("refill after interval", func(t *testing.T) {
		clk.Add(time.Second)
		ok, _, err := bucket.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, _, err = bucket.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
