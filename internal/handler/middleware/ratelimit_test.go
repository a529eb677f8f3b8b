//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"activity-ledger/internal/domain/user"
	"activity-ledger/internal/handler/middleware"
	"activity-ledger/internal/mock/middlewaremock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newLimitedRouter(t *testing.T, limiter middleware.Limiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/bookings", func(c *gin.Context) {
		middleware.SetPrincipal(c, principal(t, 42, user.RoleMember))
		c.Next()
	}, middleware.RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRateLimit(t *testing.T) {
	const key = "user:42:GET /bookings"

	t.Run("allowed", func(t *testing.T) {
		limiter := middlewaremock.NewMockLimiter(gomock.NewController(t))
		limiter.EXPECT().Allow(gomock.Any(), key).Return(true, time.Duration(0), nil)

		w := get(newLimitedRouter(t, limiter), "/bookings", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("rejected with Retry-After", func(t *testing.T) {
		limiter := middlewaremock.NewMockLimiter(gomock.NewController(t))
		limiter.EXPECT().Allow(gomock.Any(), key).Return(false, 1500*time.Millisecond, nil)

		w := get(newLimitedRouter(t, limiter), "/bookings", "")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
	})

	t.Run("limiter failure fails open", func(t *testing.T) {
		limiter := middlewaremock.NewMockLimiter(gomock.NewController(t))
		limiter.EXPECT().Allow(gomock.Any(), key).Return(false, time.Duration(0), errors.New("redis down"))

		w := get(newLimitedRouter(t, limiter), "/bookings", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
