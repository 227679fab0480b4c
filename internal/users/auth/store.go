// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	// FindByID returns the account with the given ID or dberr.ErrNotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email, case-insensitively.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: apperr CONFLICT when the username or email is taken
	*/
	Create(ctx context.Context, user *User) error

	// TouchLastLogin stamps the account's last successful login.
	TouchLastLogin(ctx context.Context, id string) error
}

// # Session Data Access

// SessionRepository defines the contract for refresh-token sessions.
type SessionRepository interface {

	// Create stores the session until its ExpiresAt.
	Create(ctx context.Context, session *Session) error

	/*
		FindByTokenHash returns the live session for tokenHash.

		Returns:
		  - *Session: Hydrated session
		  - error: apperr NOT_FOUND when absent or expired
	*/
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// Revoke deletes one session. Revoking a missing session is not an error.
	Revoke(ctx context.Context, session *Session) error

	// RevokeAll deletes every session of userID.
	RevokeAll(ctx context.Context, userID string) error
}
