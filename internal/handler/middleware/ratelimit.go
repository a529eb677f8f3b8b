package middleware

//go:generate mockgen -source=ratelimit.go -destination=../../mock/middlewaremock/ratelimit.go -package=middlewaremock

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"activity-ledger/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RateLimit keys buckets by the authenticated user and the route, so it
// must run after RequireAuth. A limiter failure lets the request through.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "anon:" + c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = "user:" + strconv.FormatInt(userID, 10)
		}
		key += ":" + c.Request.Method + " " + c.FullPath()

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}
		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.AbortWithError(c, http.StatusTooManyRequests, nil, "Rate limit exceeded", gin.H{"retry_after": secs})
			return
		}
		c.Next()
	}
}
