package services

import (
	"testing"
	"time"

	"github.com/criss159/fauna-kids/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return &JWTService{
		AccessTokenDuration:  24 * time.Hour,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		jwtSecretKey:         "test-secret",
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair("user-1", false, shared.AccountTypeRegistered)
	require.NoError(t, err)
	assert.Equal(t, int64(86400), pair.ExpiresIn)

	claims, err := svc.VerifyJWTToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.False(t, claims.IsGuest)
	assert.Equal(t, shared.AccountTypeRegistered, claims.AccountType)
	assert.Equal(t, "access", claims.TokenType)
}

func TestVerifyRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair("user-1", false, shared.AccountTypeRegistered)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(pair.AccessToken)
	require.Error(t, err)

	claims, err := svc.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestVerifyJWTTokenRejectsExpired(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.toJWT("user-1", false, shared.AccountTypeRegistered, "access", -time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(token)
	require.Error(t, err)
}

func TestVerifyJWTTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := &JWTService{jwtSecretKey: "other-secret"}

	pair, err := svc.GenerateTokenPair("user-1", false, shared.AccountTypeRegistered)
	require.NoError(t, err)

	_, err = other.VerifyJWTToken(pair.AccessToken)
	require.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ExtractTokenFromHeader("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = svc.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = svc.ExtractTokenFromHeader("Token abc123")
	assert.Error(t, err)
}
