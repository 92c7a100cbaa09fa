package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"logistics/internal/pkg/actor"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestJWTAuthenticator(t *testing.T) {
	auth, err := NewJWTAuthenticator("s3cret")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.Issue("user-7", []actor.Role{actor.RoleSeller, actor.RoleCarrier}, time.Hour)
		require.NoError(t, err)

		who, err := auth.Authenticate(bearerRequest(token))

		require.NoError(t, err)
		assert.Equal(t, "user-7", who.Subject)
		assert.Equal(t, []actor.Role{actor.RoleSeller, actor.RoleCarrier}, who.Roles)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := auth.Authenticate(bearerRequest(""))
		require.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.Issue("user-7", []actor.Role{actor.RoleAdmin}, -time.Minute)
		require.NoError(t, err)

		_, err = auth.Authenticate(bearerRequest(token))
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("foreign secret", func(t *testing.T) {
		other, err := NewJWTAuthenticator("another")
		require.NoError(t, err)
		token, err := other.Issue("user-7", []actor.Role{actor.RoleAdmin}, time.Hour)
		require.NoError(t, err)

		_, err = auth.Authenticate(bearerRequest(token))
		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, tokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-7",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte("s3cret"))
		require.NoError(t, err)

		_, err = auth.Authenticate(bearerRequest(token))
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-7",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Roles: []string{"root"},
		}).SignedString([]byte("s3cret"))
		require.NoError(t, err)

		_, err = auth.Authenticate(bearerRequest(token))
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := NewJWTAuthenticator("")
		require.Error(t, err)
	})
}

func TestDevAuthenticator(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	who, err := DevAuthenticator{}.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, "dev", who.Subject)
	assert.True(t, who.HasAnyRole(actor.RoleAdmin))

	req.Header.Set(headerDevUser, "ana")
	req.Header.Set(headerDevRoles, "seller, Carrier")
	who, err = DevAuthenticator{}.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, "ana", who.Subject)
	assert.Equal(t, []actor.Role{actor.RoleSeller, actor.RoleCarrier}, who.Roles)

	req.Header.Set(headerDevRoles, "root")
	_, err = DevAuthenticator{}.Authenticate(req)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
