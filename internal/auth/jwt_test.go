package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	id := uuid.New()
	token, err := TestJWT.GenerateStandardToken(id)
	require.NoError(t, err)

	claims, err := TestJWT.ValidatedToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, "job-board", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokensHaveDistinctIDs(t *testing.T) {
	id := uuid.New()
	a, err := TestJWT.GenerateStandardToken(id)
	require.NoError(t, err)
	b, err := TestJWT.GenerateStandardToken(id)
	require.NoError(t, err)

	ca, err := TestJWT.ValidatedToken(a)
	require.NoError(t, err)
	cb, err := TestJWT.ValidatedToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestValidatedTokenExpired(t *testing.T) {
	token, err := TestJWT.GenerateTokenWithDuration(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = TestJWT.ValidatedToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidatedTokenWrongIssuer(t *testing.T) {
	other := NewJWTManager("test-secret", "someone-else", time.Hour)
	token, err := other.GenerateStandardToken(uuid.New())
	require.NoError(t, err)

	_, err = TestJWT.ValidatedToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidatedTokenWrongSecret(t *testing.T) {
	other := NewJWTManager("another-secret", "job-board", time.Hour)
	token, err := other.GenerateStandardToken(uuid.New())
	require.NoError(t, err)

	_, err = TestJWT.ValidatedToken(token)
	assert.Error(t, err)
}

func TestValidatedTokenGarbage(t *testing.T) {
	_, err := TestJWT.ValidatedToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateRefreshToken(t *testing.T) {
	a, err := GenerateRefreshToken()
	require.NoError(t, err)
	b, err := GenerateRefreshToken()
	require.NoError(t, err)

	assert.Len(t, a, RefreshTokenBytes*2)
	assert.NotEqual(t, a, b)
}
