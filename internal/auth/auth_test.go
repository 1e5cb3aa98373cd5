package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

func TestVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Issued token resolves to its identity", func(t *testing.T) {
		// Given: a verifier with a secret and a token it issued
		verifier := NewVerifier("s3cret", false)
		token, err := verifier.Issue(entity.Identity{ID: "42", Name: "alice"}, time.Hour)
		require.NoError(t, err)

		// When: verifying the token
		identity, err := verifier.Verify(ctx, token, "ignored")

		// Then: the identity comes from the claims
		require.NoError(t, err)
		assert.Equal(t, entity.Identity{ID: "42", Name: "alice"}, identity)
	})

	t.Run("Token signed with another secret is rejected", func(t *testing.T) {
		token, err := NewVerifier("other", false).Issue(entity.Identity{ID: "42"}, time.Hour)
		require.NoError(t, err)

		_, err = NewVerifier("s3cret", false).Verify(ctx, token, "")

		require.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		verifier := NewVerifier("s3cret", false)
		token, err := verifier.Issue(entity.Identity{ID: "42"}, -time.Minute)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, token, "")

		require.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("Guest without secret", func(t *testing.T) {
		identity, err := NewVerifier("", false).Verify(ctx, "", " bob ")

		require.NoError(t, err)
		assert.Equal(t, entity.Identity{ID: "guest:bob", Name: "bob"}, identity)
	})

	t.Run("Guest without a name", func(t *testing.T) {
		identity, err := NewVerifier("", false).Verify(ctx, "", "")

		require.NoError(t, err)
		assert.Equal(t, "Guest", identity.Name)
	})

	t.Run("Guests refused when a token is required", func(t *testing.T) {
		_, err := NewVerifier("s3cret", false).Verify(ctx, "", "bob")

		require.ErrorIs(t, err, ErrGuestsNotAllowed)
		require.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}
