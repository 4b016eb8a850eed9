package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTM() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", "test", time.Hour, 24*time.Hour)
}

func TestGenerateAndParsePair(t *testing.T) {
	tm := newTestTM()

	access, refresh, exp, err := tm.GeneratePair("user-1", "admin")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := tm.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	rc, err := tm.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", rc.Type)
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	tm := newTestTM()
	access, refresh, _, err := tm.GeneratePair("user-1", "user")
	require.NoError(t, err)

	_, err = tm.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := newTestTM()
	other := NewTokenManager("different", "different", "test", time.Hour, time.Hour)

	access, _, _, err := tm.GeneratePair("user-1", "user")
	require.NoError(t, err)

	_, err = other.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("s", "s", "test", -time.Minute, -time.Minute)

	access, _, _, err := tm.GeneratePair("user-1", "user")
	require.NoError(t, err)

	_, err = tm.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := newTestTM()
	_, err := tm.ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NoError(t, VerifyPassword("s3cret", hash))
	assert.Error(t, VerifyPassword("wrong", hash))
}
