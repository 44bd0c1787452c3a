package auth_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autonuoma/config"
	"autonuoma/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("64a0f0c2e1b2c3d4e5f60002")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64a0f0c2e1b2c3d4e5f60002", claims.UserID)
}

func TestTokenCarriesExpiry(t *testing.T) {
	token, err := auth.GenerateToken("user-1")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)

	remaining := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.InDelta(t, auth.TokenTTL.Seconds(), remaining.Seconds(), 1)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := auth.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{UserID: "intruder"})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	require.NotEqual(t, "some-other-secret", config.JWTSecret())

	_, err = auth.ValidateToken(signed)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("Slaptazodis1!")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hash, "Slaptazodis1!"))
	assert.False(t, auth.CheckPassword(hash, "Slaptazodis2!"))
}
