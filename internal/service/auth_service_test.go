package service

import (
	"net/url"
	"testing"
	"time"

	"ops-collab-be/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(secret string) *authService {
	svc := NewAuthService(nil, config.DiscordConfig{
		ClientID:    "client",
		RedirectURL: "http://localhost/callback",
	}, config.AuthConfig{JwtSecret: secret, TokenTTLHour: 1}, nil)
	return svc.(*authService)
}

func TestLoginURLCarriesVerifiableState(t *testing.T) {
	s := newTestAuthService("secret")

	u, err := url.Parse(s.GetLoginURL())
	require.NoError(t, err)
	state := u.Query().Get("state")
	require.NotEmpty(t, state)

	assert.NoError(t, s.verifyStateToken(state))
	assert.NotEqual(t, s.newStateToken(), s.newStateToken(), "each login attempt gets its own state")
}

func TestStateTokenRejectsForgeries(t *testing.T) {
	s := newTestAuthService("secret")

	t.Run("empty", func(t *testing.T) {
		assert.Error(t, s.verifyStateToken(""))
	})

	t.Run("garbage", func(t *testing.T) {
		assert.Error(t, s.verifyStateToken("not-a-token"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newTestAuthService("other-secret")
		assert.Error(t, s.verifyStateToken(other.newStateToken()))
	})

	t.Run("expired", func(t *testing.T) {
		claims := jwt.MapClaims{"purpose": "oauth_state", "exp": time.Now().Add(-time.Minute).Unix()}
		state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		assert.Error(t, s.verifyStateToken(state))
	})

	t.Run("session token is not a state", func(t *testing.T) {
		claims := jwt.MapClaims{"user_id": "abc", "exp": time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		assert.Error(t, s.verifyStateToken(token))
	})
}
