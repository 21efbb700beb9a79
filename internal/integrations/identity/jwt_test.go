package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

func TestJWTVerifier(t *testing.T) {
	verifier := NewJWTVerifier("secret", "car-rental")
	ctx := context.Background()

	t.Run("user", func(t *testing.T) {
		token, err := verifier.Issue(domain.Principal{ID: "user-1", Role: "customer"}, time.Hour)
		require.NoError(t, err)

		principal, err := verifier.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, domain.Principal{ID: "user-1", Role: "customer"}, principal)
	})

	t.Run("admin role", func(t *testing.T) {
		token, err := verifier.Issue(domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}, time.Hour)
		require.NoError(t, err)

		principal, err := verifier.Verify(ctx, token)
		require.NoError(t, err)
		assert.True(t, principal.IsAdmin)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := verifier.Issue(domain.Principal{ID: "user-1"}, -time.Minute)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTVerifier("other", "car-rental").Issue(domain.Principal{ID: "user-1"}, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewJWTVerifier("secret", "someone-else").Issue(domain.Principal{ID: "user-1"}, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "car-rental"},
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})
}
