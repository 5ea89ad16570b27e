package auth

import (
	"testing"
	"time"

	"github.com/datamark/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "datamark-test",
		MaxRefreshCount:        10,
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := newTestService()
	storeID := uuid.New()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		StoreID: storeID,
		UserID:  userID,
		Email:   "admin@demo.com",
		Role:    "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, storeID.String(), claims.StoreID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	gotStore, err := claims.GetStoreUUID()
	require.NoError(t, err)
	assert.Equal(t, storeID, gotStore)
}

func TestTokenTypeMismatch(t *testing.T) {
	service := newTestService()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		StoreID: uuid.New(),
		UserID:  uuid.New(),
	})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = service.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateGarbageToken(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenPair(t *testing.T) {
	service := newTestService()
	storeID := uuid.New()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		StoreID: storeID,
		UserID:  userID,
		Email:   "admin@demo.com",
		Role:    "admin",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshTokenPair(pair.RefreshToken, "admin@demo.com", "admin")
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, storeID.String(), claims.StoreID)

	refreshClaims, err := service.ValidateRefreshToken(refreshed.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-tests-only",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: -time.Minute,
		Issuer:                 "datamark-test",
	})

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		StoreID: uuid.New(),
		UserID:  uuid.New(),
	})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
