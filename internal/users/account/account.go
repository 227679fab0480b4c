// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account lets an authenticated user read and edit their profile and
delete their account.

Deleting an account removes the users.account row; every knowledge-base
record cascades with it and all refresh sessions are revoked.
*/
package account

import (
	"context"

	"github.com/taibuivan/ibis/internal/users/auth"
)

// # Repository Contracts

// Repository defines the persistence contract for the caller's own account.
type Repository interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)

	/*
		Update writes the mutable profile fields (email, display name).

		Returns:
		  - error: CONFLICT when the email belongs to another account
	*/
	Update(ctx context.Context, user *auth.User) error

	// Delete hard-deletes the account and, through foreign keys, all its data.
	Delete(ctx context.Context, id string) error
}

// SessionRevoker ends every refresh session of a user.
type SessionRevoker interface {
	RevokeAllSessions(ctx context.Context, userID string) error
}

// UpdateProfileInput carries a partial profile update; nil fields are left alone.
type UpdateProfileInput struct {
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
}
