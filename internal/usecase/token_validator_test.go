//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"activity-ledger/internal/domain/user"
	"activity-ledger/internal/pkg/jwt"
	"activity-ledger/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("test-secret")
	validator := usecase.NewTokenValidator(svc)

	t.Run("admin token", func(t *testing.T) {
		token, err := svc.GenerateToken(1, "admin", time.Hour)
		require.NoError(t, err)

		p, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID())
		assert.True(t, p.IsAdmin())
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := svc.GenerateToken(1, "operator", time.Hour)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := svc.GenerateToken(1, "member", -time.Minute)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		token, err := jwt.NewService("other").GenerateToken(1, "member", time.Hour)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
