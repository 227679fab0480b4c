// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/internal/users/auth"
)

// Service implements account self-management.
type Service struct {
	repo     Repository
	sessions SessionRevoker
	logger   *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo Repository, sessions SessionRevoker, logger *slog.Logger) *Service {
	return &Service{repo: repo, sessions: sessions, logger: logger}
}

// GetProfile returns the caller's account.
func (service *Service) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	return service.repo.FindByID(ctx, userID)
}

/*
UpdateProfile applies a partial profile update.

Description: An empty display name clears it. The email is normalised to
lower case like at registration.

Returns:
  - *auth.User: Updated account
  - error: VALIDATION_ERROR or CONFLICT (email taken)
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		v.Required(auth.FieldEmail, email).Email(auth.FieldEmail, email)
		user.Email = email
	}
	if input.DisplayName != nil {
		v.MaxLen(auth.FieldDisplayName, *input.DisplayName, auth.UsernameMaxLength)
		user.DisplayName = input.DisplayName
		if strings.TrimSpace(*input.DisplayName) == "" {
			user.DisplayName = nil
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("account_updated", slog.String("user_id", userID))
	return user, nil
}

/*
DeleteAccount removes the account with all of its data and ends its sessions.

Sessions are revoked after the row is gone; a revocation failure is logged
only, since the sessions can no longer resolve to a user.
*/
func (service *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := service.repo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := service.sessions.RevokeAllSessions(ctx, userID); err != nil {
		service.logger.Warn("account_session_revoke_failed", slog.String("user_id", userID), slog.Any("error", err))
	}

	service.logger.Info("account_deleted", slog.String("user_id", userID))
	return nil
}
