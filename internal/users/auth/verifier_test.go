// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaochi/medialib/internal/platform/middleware"
	"github.com/numaochi/medialib/internal/platform/sec"
	"github.com/numaochi/medialib/internal/users/auth"
)

func newTestVerifier(t *testing.T) (*auth.SessionVerifier, *sec.TokenService, *fakeSessionRepository) {
	t.Helper()

	tokenService, err := sec.NewTokenService("verifier-test-secret", "medialib-test")
	require.NoError(t, err)

	sessions := newFakeSessionRepository()
	return auth.NewSessionVerifier(tokenService, sessions), tokenService, sessions
}

/*
TestSessionVerifier_AcceptsLiveSession verifies a signed token backed by a
live session record yields its claims.
*/
func TestSessionVerifier_AcceptsLiveSession(t *testing.T) {
	verifier, tokenService, sessions := newTestVerifier(t)
	ctx := context.Background()

	require.NoError(t, sessions.Set(ctx, "token-1", 42, time.Hour))
	signed, err := tokenService.GenerateAccessToken("token-1", 42, "numa", time.Hour)
	require.NoError(t, err)

	claims, err := verifier.VerifyToken(ctx, signed)
	require.NoError(t, err)
	assert.Equal(t, "token-1", claims.ID)
	assert.Equal(t, int64(42), claims.UserID)
}

/*
TestSessionVerifier_RejectsRevokedSession verifies a token whose session has
been deleted is rejected even though its signature and expiry are still valid.
*/
func TestSessionVerifier_RejectsRevokedSession(t *testing.T) {
	verifier, tokenService, sessions := newTestVerifier(t)
	ctx := context.Background()

	require.NoError(t, sessions.Set(ctx, "token-1", 42, time.Hour))
	signed, err := tokenService.GenerateAccessToken("token-1", 42, "numa", time.Hour)
	require.NoError(t, err)

	require.NoError(t, sessions.Delete(ctx, "token-1"))

	_, err = verifier.VerifyToken(ctx, signed)
	assert.ErrorIs(t, err, auth.ErrSessionRevoked)
}

/*
TestSessionVerifier_RejectsInvalidToken verifies garbage never reaches the
session store.
*/
func TestSessionVerifier_RejectsInvalidToken(t *testing.T) {
	verifier, _, _ := newTestVerifier(t)

	_, err := verifier.VerifyToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}

/*
TestLogoutRevokesAccessImmediately walks the full round trip: register, log
in, then log out and replay the same bearer token through the authentication
middleware. The replayed token must be rejected with 401 even though it has
not yet expired.
*/
func TestLogoutRevokesAccessImmediately(t *testing.T) {
	ctx := context.Background()

	tokenService, err := sec.NewTokenService("verifier-test-secret", "medialib-test")
	require.NoError(t, err)

	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := auth.NewService(users, sessions, tokenService)
	verifier := auth.NewSessionVerifier(tokenService, sessions)

	credentials := auth.Credentials{Username: "numa", Password: "Abcdef!1"}
	require.NoError(t, service.Register(ctx, credentials))

	session, err := service.Login(ctx, credentials)
	require.NoError(t, err)

	// A protected endpoint behind the real middleware chain.
	protected := middleware.Authenticate(verifier)(middleware.RequireAuth(
		http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}),
	))

	send := func() int {
		request := httptest.NewRequest(http.MethodGet, "/api/series", nil)
		request.Header.Set("Authorization", "Bearer "+session.AccessToken)
		recorder := httptest.NewRecorder()
		protected.ServeHTTP(recorder, request)
		return recorder.Code
	}

	// 1. While the session is live, the token grants access.
	assert.Equal(t, http.StatusOK, send())

	// 2. Logout revokes the session record.
	claims, err := tokenService.VerifyToken(session.AccessToken)
	require.NoError(t, err)
	require.NoError(t, service.Logout(ctx, claims.ID))

	// 3. The same token is now rejected.
	assert.Equal(t, http.StatusUnauthorized, send())
}
