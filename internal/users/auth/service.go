// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/ibis/internal/platform/apperr"
	"github.com/taibuivan/ibis/internal/platform/sec"
	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new auth [Service].
func NewService(userRepo UserRepository, sessionRepo SessionRepository, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
		now:               time.Now,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new user.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName *string
}

/*
Register validates, hashes, and persists a brand new user account.

Returns:
  - *User: Created entity
  - error: VALIDATION_ERROR, CONFLICT (username or email taken) or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	v := &validate.Validator{}
	v.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLength).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		Custom(FieldPassword, len(input.Password) > sec.PasswordMaxBytes, "Maximum 72 bytes")
	if input.DisplayName != nil {
		v.MaxLen(FieldDisplayName, *input.DisplayName, UsernameMaxLength)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // username or email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is a successfully established session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues an access token and a refresh session.

Returns:
  - *LoginSession: Tokens and the authenticated user
  - error: VALIDATION_ERROR, UNAUTHORIZED (same message for unknown user and
    wrong password) or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	v := &validate.Validator{}
	if err := v.Required(FieldLogin, input.Login).Required(FieldPassword, input.Password).Err(); err != nil {
		return nil, err
	}

	login := strings.TrimSpace(input.Login)
	user, err := service.userRepository.FindByEmail(ctx, login)
	if apperr.IsNotFound(err) {
		user, err = service.userRepository.FindByUsername(ctx, login)
	}
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}

	var passwordHash string
	if user != nil {
		passwordHash = user.PasswordHash
	}
	if !sec.CheckPasswordHash(input.Password, passwordHash) {
		service.logger.Warn("login_failed", slog.String("login", input.Login), slog.String("ip", input.IPAddress))
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.issue(ctx, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.TouchLastLogin(ctx, user.ID); err != nil {
		service.logger.Warn("touch_last_login_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

/*
Logout revokes the session of refreshToken.

Unknown or expired tokens are ignored so the operation is idempotent.
*/
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	session, err := service.sessionRepository.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(ctx, session); err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_logout_failed: %w", err))
	}

	service.logger.Info("user_logged_out", slog.String("user_id", session.UserID))
	return nil
}

// # Session Management

/*
RefreshSession rotates a refresh token.

Description: The presented session is revoked before a new one is issued, so
a refresh token can be used only once.

Returns:
  - *LoginSession: New tokens
  - error: UNAUTHORIZED when the token is unknown, expired or its user is gone
*/
func (service *Service) RefreshSession(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessionRepository.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, apperr.Internal(err)
	}

	if err := service.sessionRepository.Revoke(ctx, session); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_refresh_revoke_failed: %w", err))
	}

	user, err := service.userRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	return service.issue(ctx, user, userAgent, ipAddress)
}

// RevokeAllSessions ends every refresh session of userID.
func (service *Service) RevokeAllSessions(ctx context.Context, userID string) error {
	if err := service.sessionRepository.RevokeAll(ctx, userID); err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_revoke_all_failed: %w", err))
	}
	return nil
}

// issue signs an access token and stores a fresh refresh session for user.
func (service *Service) issue(ctx context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	refreshToken, err := sec.GenerateSecureToken()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_refresh_token_failed: %w", err))
	}

	now := service.now()
	session := &Session{
		TokenHash: sec.HashToken(refreshToken),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(RefreshTokenTTL),
		CreatedAt: now,
	}

	if err := service.sessionRepository.Create(ctx, session); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_session_creation_failed: %w", err))
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		User:                  user,
	}, nil
}
