// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/numaochi/medialib/internal/platform/sec"
)

// ErrSessionRevoked is returned when a token is cryptographically valid but
// its backing session no longer exists, typically after logout.
var ErrSessionRevoked = errors.New("auth: session revoked or expired")

// ClaimsVerifier checks a token's signature and expiry.
// It is satisfied by [sec.TokenService].
type ClaimsVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// SessionVerifier verifies an access token and then requires the session
// record keyed by the token's jti to still be live. Logout deletes that
// record, so a revoked token is rejected immediately instead of remaining
// usable until its expiry.
type SessionVerifier struct {
	tokens   ClaimsVerifier
	sessions SessionRepository
}

func NewSessionVerifier(tokens ClaimsVerifier, sessions SessionRepository) *SessionVerifier {
	return &SessionVerifier{tokens: tokens, sessions: sessions}
}

// VerifyToken implements the verification contract consumed by the
// authentication middleware.
func (verifier *SessionVerifier) VerifyToken(ctx context.Context, tokenString string) (*sec.AuthClaims, error) {
	claims, err := verifier.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	alive, err := verifier.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: session lookup failed: %w", err)
	}
	if !alive {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}
