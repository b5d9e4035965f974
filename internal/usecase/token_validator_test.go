//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dorm-services/internal/domain/user"
	"dorm-services/internal/infra/tokenstore"
	"dorm-services/internal/pkg/clock"
	"dorm-services/internal/pkg/jwt"
	"dorm-services/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDenylist struct{}

func (failingDenylist) Revoke(context.Context, string, time.Time) error { return errors.New("down") }
func (failingDenylist) IsRevoked(context.Context, string) (bool, error) { return false, errors.New("down") }

func TestTokenValidator(t *testing.T) {
	ctx := context.Background()
	svc := jwt.NewService("secret", time.Hour)

	token, claims, err := svc.GenerateToken("admin", user.RoleAdmin)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		v := usecase.NewTokenValidator(svc, tokenstore.NewMemoryDenylist(clock.NewRealClock()))

		session, err := v.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "admin", session.Username)
		assert.Equal(t, user.RoleAdmin, session.Role)
		assert.Equal(t, claims.ID, session.TokenID)
	})

	t.Run("revoked token", func(t *testing.T) {
		denylist := tokenstore.NewMemoryDenylist(clock.NewRealClock())
		require.NoError(t, denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time))

		_, err := usecase.NewTokenValidator(svc, denylist).ValidateToken(ctx, token)
		assert.ErrorIs(t, err, usecase.ErrTokenRevoked)
	})

	t.Run("denylist failure rejects the token", func(t *testing.T) {
		_, err := usecase.NewTokenValidator(svc, failingDenylist{}).ValidateToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("invalid token", func(t *testing.T) {
		v := usecase.NewTokenValidator(svc, tokenstore.NewMemoryDenylist(clock.NewRealClock()))
		_, err := v.ValidateToken(ctx, "nope")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
