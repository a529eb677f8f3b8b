package ratelimit

import (
	"context"
	"time"

	"activity-ledger/internal/pkg/clock"
	"activity-ledger/internal/pkg/config"
	"activity-ledger/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// Tokens are refilled in whole intervals so that every replica computes the
// same bucket state from the stored last_refill_ms.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
  tokens = capacity
  last_refill = now_ms
end

if interval_ms > 0 and refill_tokens > 0 then
  local elapsed = math.max(0, now_ms - last_refill)
  local intervals = math.floor(elapsed / interval_ms)
  if intervals > 0 then
    tokens = math.min(capacity, tokens + (intervals * refill_tokens))
    last_refill = last_refill + (intervals * interval_ms)
  end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, retry_after_ms }
`)

type TokenBucket struct {
	rdb   redis.Scripter
	cfg   config.RateLimitConfig
	clock clock.Clock
}

func NewTokenBucket(rdb redis.Scripter, cfg config.RateLimitConfig, clk clock.Clock) *TokenBucket {
	return &TokenBucket{rdb: rdb, cfg: cfg, clock: clk}
}

// Allow takes one token from the bucket identified by key. When the bucket is
// empty it reports how long until the next refill.
func (b *TokenBucket) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	ttl := int64(b.cfg.TTL / time.Second)
	if ttl < 1 {
		ttl = 1
	}
	vals, err := tokenBucketScript.Run(ctx, b.rdb, []string{b.cfg.Prefix + ":" + key},
		b.clock.Now().UnixMilli(),
		b.cfg.Capacity,
		b.cfg.RefillTokens,
		b.cfg.RefillInterval.Milliseconds(),
		ttl,
	).Int64Slice()
	if err != nil {
		return false, 0, errs.Wrap(err, "token bucket script")
	}
	if len(vals) != 2 {
		return false, 0, errs.Newf("token bucket script returned %d values", len(vals))
	}
	return vals[0] == 1, time.Duration(vals[1]) * time.Millisecond, nil
}
