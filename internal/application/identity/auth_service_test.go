package identity

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/infrastructure/auth"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-that-is-long-enough-123",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "fintrack-test",
	})
}

func TestLogoutRevokesTokenPair(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(nil, jwtService, blacklist, zap.NewNop())
	ctx := context.Background()

	pair, err := jwtService.GenerateTokenPair(uuid.New(), "user@example.com")
	require.NoError(t, err)

	accessClaims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	err = svc.Logout(ctx, accessClaims, LogoutRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)

	revoked, err := blacklist.IsRevoked(ctx, accessClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked, "access token should be revoked")

	refreshClaims, err := jwtService.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	revoked, err = blacklist.IsRevoked(ctx, refreshClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked, "refresh token should be revoked")
}

func TestLogoutWithoutRefreshToken(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(nil, jwtService, blacklist, zap.NewNop())
	ctx := context.Background()

	pair, err := jwtService.GenerateTokenPair(uuid.New(), "user@example.com")
	require.NoError(t, err)

	accessClaims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, accessClaims, LogoutRequest{}))

	revoked, err := blacklist.IsRevoked(ctx, accessClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogoutIgnoresGarbageRefreshToken(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(nil, jwtService, blacklist, zap.NewNop())

	pair, err := jwtService.GenerateTokenPair(uuid.New(), "user@example.com")
	require.NoError(t, err)

	accessClaims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	err = svc.Logout(context.Background(), accessClaims, LogoutRequest{RefreshToken: "not.a.token"})
	assert.NoError(t, err)
}
