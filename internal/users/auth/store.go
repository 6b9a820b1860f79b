// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository is the storage-access contract for accounts.
type UserRepository interface {
	// FindByUsername returns (nil, nil) when no account carries the username.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// CreateUser persists a new account and fills in its identity.
	CreateUser(ctx context.Context, user *User) error
}

// SessionRepository tracks active sessions keyed by token ID, so an access
// token can be revoked before its expiry.
type SessionRepository interface {
	Set(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error
	// Exists reports whether the session is still live. A revoked or expired
	// session returns false without error.
	Exists(ctx context.Context, tokenID string) (bool, error)
	// Delete is idempotent: removing an unknown session is not an error.
	Delete(ctx context.Context, tokenID string) error
}
