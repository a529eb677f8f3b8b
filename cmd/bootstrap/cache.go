package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"activity-ledger/internal/handler/middleware"
	"activity-ledger/internal/infra/ratelimit"
	"activity-ledger/internal/pkg/clock"
	"activity-ledger/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedis,
		NewLimiter,
	),
)

// NewRedis returns nil when rate limiting is disabled; nothing else uses Redis.
func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			// the limiter fails open, so an unreachable Redis is not fatal
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("redis unreachable, rate limiting will fail open", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}

func NewLimiter(rdb *redis.Client, cfg config.Config, clk clock.Clock) middleware.Limiter {
	if rdb == nil {
		return nil
	}
	return ratelimit.NewTokenBucket(rdb, cfg.RateLimit, clk)
}
