package services

import (
	"context"
	"testing"
	"time"

	"github.com/criss159/fauna-kids/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *PostgresService) {
	t.Helper()

	ds := newTestPostgres(t)
	return &AuthService{
		sqlSvc:      ds,
		jwtSvc:      newTestJWTService(),
		progressSvc: &ProgressService{sqlSvc: ds},
		redisSvc:    &RedisService{},
	}, ds
}

func createTestGuestSession(t *testing.T, ds *PostgresService, expiresAt time.Time) *model.GuestSession {
	t.Helper()

	now := time.Now().UTC()
	session, err := ds.CreateGuestSession(&model.GuestSession{
		SessionToken:   randomToken(32),
		UserNickname:   "Explorador",
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
	})
	require.NoError(t, err)
	return session
}

func TestVerifyGuestSessionValid(t *testing.T) {
	svc, ds := newTestAuthService(t)
	session := createTestGuestSession(t, ds, time.Now().UTC().Add(time.Hour))

	resp, err := svc.VerifyGuestSession(session.SessionToken)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, "Explorador", resp.Nickname)
}

func TestVerifyGuestSessionDeletesExpired(t *testing.T) {
	svc, ds := newTestAuthService(t)
	session := createTestGuestSession(t, ds, time.Now().UTC().Add(-time.Minute))

	resp, err := svc.VerifyGuestSession(session.SessionToken)
	require.NoError(t, err)
	assert.False(t, resp.Valid)

	// Expiry detection removes the row, not just the validity flag.
	_, err = ds.GetGuestSessionByToken(session.SessionToken)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestVerifyGuestSessionUnknownToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.VerifyGuestSession("no-such-token")
	require.NoError(t, err)
	assert.False(t, resp.Valid)
}

func TestLogoutSwallowsBadTokens(t *testing.T) {
	svc, _ := newTestAuthService(t)

	require.NoError(t, svc.Logout(context.Background(), ""))
	require.NoError(t, svc.Logout(context.Background(), "not-a-jwt"))

	// Access tokens are not revocable, only discarded.
	pair, err := svc.jwtSvc.GenerateTokenPair("user-1", false, "registered")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), pair.AccessToken))
}

func TestLogoutWithoutRedisFailsOpen(t *testing.T) {
	svc, ds := newTestAuthService(t)
	user := createTestUser(t, ds, "nora")

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID, false, user.AccountType)
	require.NoError(t, err)

	// Without Redis the token cannot be held in the denylist, so logout
	// succeeds and the refresh token keeps working.
	require.NoError(t, svc.Logout(context.Background(), pair.RefreshToken))

	refreshed, err := svc.RefreshTokens(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshTokensRejectsAccessToken(t *testing.T) {
	svc, ds := newTestAuthService(t)
	user := createTestUser(t, ds, "pau")

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID, false, user.AccountType)
	require.NoError(t, err)

	_, err = svc.RefreshTokens(context.Background(), pair.AccessToken)
	require.Error(t, err)
}
