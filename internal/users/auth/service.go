// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/numaochi/medialib/internal/platform/apperr"
	"github.com/numaochi/medialib/internal/platform/constants"
	"github.com/numaochi/medialib/internal/platform/sec"
	"github.com/numaochi/medialib/internal/platform/validate"
)

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(tokenID string, userID int64, username string, timeToLive time.Duration) (string, error)
}

// Service implements account registration and session use cases.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
}

func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Credentials holds a username/password pair for registration or login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	AccessToken string `json:"accessToken"`
	Username    string `json:"username"`
}

// Register validates, hashes, and persists a new account.
//
// A taken username is reported as a validation failure, not a conflict, so
// the client sees a 400 either way.
func (service *Service) Register(ctx context.Context, input Credentials) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		LenBetween(FieldPassword, input.Password, constants.PasswordMinLen, constants.PasswordMaxLen).
		ContainsUpper(FieldPassword, input.Password).
		ContainsAny(FieldPassword, input.Password, constants.PasswordSpecialChars,
			fmt.Sprintf("Must contain at least one special character (%s)", constants.PasswordSpecialChars))
	if err := validator.Err(); err != nil {
		return err
	}

	existing, err := service.users.FindByUsername(ctx, input.Username)
	if err != nil {
		return fmt.Errorf("auth_service_lookup_failed: %w", err)
	}
	if existing != nil {
		return apperr.ValidationError("Username is already taken!")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}
	if err := service.users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return nil
}

// Login verifies credentials and issues a signed access token backed by a
// Redis session record.
func (service *Service) Login(ctx context.Context, input Credentials) (*LoginSession, error) {
	user, err := service.users.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	// Generic message to prevent account enumeration.
	if user == nil || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// The token ID doubles as the session key, so logout can revoke it.
	tokenID := uuid.NewString()
	if err := service.sessions.Set(ctx, tokenID, user.ID, constants.AccessTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	accessToken, err := service.tokens.GenerateAccessToken(tokenID, user.ID, user.Username, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		Username:    user.Username,
	}, nil
}

// Logout revokes the session behind the presented token. Revoking a session
// that is already gone is treated as success.
func (service *Service) Logout(ctx context.Context, tokenID string) error {
	if err := service.sessions.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}
