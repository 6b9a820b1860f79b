// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaochi/medialib/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a generated token verifies back to
its original claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "test-issuer")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("token-1", 42, "numa", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "token-1", claims.ID)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "numa", claims.Username)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

/*
TestTokenService_RejectsWrongSecret ensures tokens signed with a different
secret do not verify.
*/
func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuing, err := sec.NewTokenService("secret-a", "test-issuer")
	require.NoError(t, err)
	verifying, err := sec.NewTokenService("secret-b", "test-issuer")
	require.NoError(t, err)

	token, err := issuing.GenerateAccessToken("token-1", 42, "numa", time.Minute)
	require.NoError(t, err)

	_, err = verifying.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsExpired ensures an expired token does not verify.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "test-issuer")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("token-1", 42, "numa", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestNewTokenService_RequiresSecret ensures construction fails without a
signing secret.
*/
func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := sec.NewTokenService("", "test-issuer")
	assert.Error(t, err)
}
