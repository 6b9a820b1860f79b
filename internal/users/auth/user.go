// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

/*
Package auth implements account registration and session management.

It covers enrollment with password-strength enforcement, credential
verification with bcrypt, and stateful sessions: every issued access token
carries a token ID (jti) that maps to a Redis record, so a session can be
revoked before the token expires.

Architecture:

  - Service: orchestrates registration, login, and logout.
  - UserRepository: Postgres-backed account storage.
  - SessionRepository: Redis-backed session records keyed by token ID.
*/
package auth

// User is a registered account.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Wire field names reported in validation details.
const (
	FieldUsername = "username"
	FieldPassword = "password"
)
