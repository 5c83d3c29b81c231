package security

import (
	"testing"
	"time"

	"tahseel-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	collectorID := int32(7)
	return &domain.User{
		ID:          3,
		Username:    "hamid",
		Role:        domain.UserRoleCollector,
		CollectorID: &collectorID,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	token, err := tm.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(3), claims.UserID)
	assert.Equal(t, "hamid", claims.Username)
	assert.Equal(t, domain.UserRoleCollector, claims.Role)
	require.NotNil(t, claims.CollectorID)
	assert.Equal(t, int32(7), *claims.CollectorID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestRefreshTokenType(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	token, err := tm.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	other := NewTokenManager("other-secret", time.Hour, 24*time.Hour)

	token, err := tm.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := tm.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
