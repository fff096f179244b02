package auth

import (
	"testing"
	"time"

	"github.com/example/marketplace/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	p := NewProvider(&config.AuthConfig{Secret: "s", Issuer: "marketplace", TokenTTL: time.Hour})
	want := Identity{UserID: 12, Username: "vendor-a", IsStaff: true}

	token, err := p.GenerateToken(want)
	require.NoError(t, err)

	got, err := p.CurrentUser("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.IsAdmin())

	raw, err := p.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, want, raw)
}

func TestRejectsBadTokens(t *testing.T) {
	p := NewProvider(&config.AuthConfig{Secret: "s", Issuer: "marketplace"})
	other := NewProvider(&config.AuthConfig{Secret: "other", Issuer: "marketplace"})
	foreign, err := other.GenerateToken(Identity{UserID: 1})
	require.NoError(t, err)

	expired := NewProvider(&config.AuthConfig{Secret: "s", Issuer: "marketplace", TokenTTL: -time.Minute})
	// negative ttl falls back to the default, so sign an expired token by hand
	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "marketplace",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString(expired.secret)
	require.NoError(t, err)

	anonymous, err := p.GenerateToken(Identity{})
	require.NoError(t, err)

	for name, header := range map[string]string{
		"empty":          "",
		"bearer only":    "Bearer ",
		"garbage":        "Bearer not-a-token",
		"wrong secret":   "Bearer " + foreign,
		"expired":        "Bearer " + stale,
		"missing userid": "Bearer " + anonymous,
	} {
		_, err := p.CurrentUser(header)
		assert.Error(t, err, name)
	}
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, Identity{UserID: 1}.IsAdmin())
	assert.True(t, Identity{UserID: 1, IsSuperuser: true}.IsAdmin())
	assert.True(t, Identity{UserID: 1, IsStaff: true}.IsAdmin())
}
