package utils

import (
	"testing"
	"time"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func testUser() *domain.User {
	return &domain.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(testSecret, 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	token, err := manager.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.FullName, claims.FullName)
	assert.False(t, claims.IsExpired())
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(testSecret, 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	token, err := manager.GenerateRefreshToken(user.ID.Hex())
	require.NoError(t, err)

	userID, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), userID)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	manager := NewTokenManager(testSecret, 15*time.Minute, 7*24*time.Hour)
	userID := primitive.NewObjectID().Hex()

	first, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)
	second, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	// The jti claim makes every refresh token distinct, even within one second
	assert.NotEqual(t, first, second)
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	manager := NewTokenManager(testSecret, 15*time.Minute, 7*24*time.Hour)
	other := NewTokenManager("another-secret-key-that-is-long-enough-too", 15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	manager := NewTokenManager(testSecret, -time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenMalformed(t *testing.T) {
	manager := NewTokenManager(testSecret, 15*time.Minute, 7*24*time.Hour)

	_, err := manager.ValidateAccessToken("not.a.token")
	assert.Error(t, err)

	_, err = manager.ValidateAccessToken("")
	assert.Error(t, err)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	manager := NewTokenManager(testSecret, 15*time.Minute, 7*24*time.Hour)

	refresh, err := manager.GenerateRefreshToken(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestAccessTokenRejectedAsRefreshToken(t *testing.T) {
	manager := NewTokenManager(testSecret, 15*time.Minute, 7*24*time.Hour)

	access, err := manager.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	manager := NewTokenManager(testSecret, 15*time.Minute, -time.Minute)

	token, err := manager.GenerateRefreshToken(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(token)
	assert.Error(t, err)
}
