package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseAccessToken(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := IssueAccessToken("u-1", "secret", "savoo", time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := ParseAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "savoo", claims.Issuer)
}

func TestParseAccessToken_Rejects(t *testing.T) {
	expired, _, err := IssueAccessToken("u-1", "secret", "savoo", time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	anonymous, _, err := IssueAccessToken("", "secret", "savoo", time.Hour, time.Now())
	require.NoError(t, err)
	valid, _, err := IssueAccessToken("u-1", "secret", "savoo", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseAccessToken(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAccessToken(anonymous, "secret")
	assert.ErrorIs(t, err, ErrMissingSubject)

	_, err = ParseAccessToken(valid, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAccessToken("not-a-token", "secret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong horse", hash))
}
