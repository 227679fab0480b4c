// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements registration, login and refresh-token sessions.

# Architecture

  - Users live in Postgres (users.account); every knowledge-base row references one.
  - Sessions live in Redis, keyed by the SHA-256 of the opaque refresh token,
    and expire on their own TTL. A refresh rotates the token.
  - Access tokens are short-lived RS256 JWTs; they are never stored.
*/
package auth

import "time"

// # Domain Entities

// User is a registered owner of a knowledge base.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	DisplayName  *string    `json:"display_name"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Session is an active refresh-token session.
type Session struct {
	TokenHash string    `json:"-"`
	UserID    string    `json:"user_id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
