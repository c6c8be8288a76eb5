package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		Issuer:                 "sitekhata-test",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		MaxRefreshCount:        3,
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := testJWTService()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Username: "site.admin",
		Role:     "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	t.Run("access token round trip", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "site.admin", claims.Username)
		assert.Equal(t, "ADMIN", claims.Role)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := service.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	service := testJWTService()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Username: "operator",
		Role:     "OPERATOR",
	})
	require.NoError(t, err)

	t.Run("refresh produces valid new pair", func(t *testing.T) {
		refreshed, err := service.RefreshTokenPair(pair.RefreshToken, "operator", "OPERATOR")
		require.NoError(t, err)

		claims, err := service.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "OPERATOR", claims.Role)

		newClaims, err := service.ValidateRefreshToken(refreshed.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, newClaims.RefreshCount)
	})

	t.Run("refresh count is capped", func(t *testing.T) {
		current := pair.RefreshToken
		for i := 0; i < 3; i++ {
			refreshed, err := service.RefreshTokenPair(current, "operator", "OPERATOR")
			require.NoError(t, err)
			current = refreshed.RefreshToken
		}

		_, err := service.RefreshTokenPair(current, "operator", "OPERATOR")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := service.RefreshTokenPair(pair.AccessToken, "operator", "OPERATOR")
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}

func TestExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		Issuer:                 "sitekhata-test",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
	})

	pair, err := service.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Username: "x", Role: "VIEWER"})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
