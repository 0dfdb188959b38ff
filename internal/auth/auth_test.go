// server/internal/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	Init("test-secret", "1h")

	token, err := GenerateJWT("64f0c8aab79e5a0001234567", "rider@example.com", "user")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c8aab79e5a0001234567", claims.UserID)
	assert.Equal(t, "rider@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	Init("first-secret", "")
	token, err := GenerateJWT("id", "a@b.c", "user")
	require.NoError(t, err)

	Init("other-secret", "")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestInitExpirationFallback(t *testing.T) {
	Init("s", "not-a-duration")
	assert.Equal(t, 24*time.Hour, JwtExpiration)

	Init("s", "30m")
	assert.Equal(t, 30*time.Minute, JwtExpiration)
}

func TestGenerateResetToken(t *testing.T) {
	Init("test-secret", "")
	token, err := GenerateResetToken("user-id")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-id", claims.UserID)
}
