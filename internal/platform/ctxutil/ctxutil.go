// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries request-scoped values (request id, logger, caller
// identity) through a [context.Context].
//
// Keys are unexported struct types, so no other package can read or overwrite
// them except through these helpers.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ibis/internal/platform/sec"
)

type (
	requestIDKey struct{}
	loggerKey    struct{}
	userKey      struct{}
)

func value[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// # Request Tracing

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := value[string](ctx, requestIDKey{})
	return id
}

// # Structured Logging

// WithLogger attaches the per-request logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the per-request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := value[*slog.Logger](ctx, loggerKey{}); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithAuthUser attaches verified claims and tags the request logger with the
// caller's user id.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	ctx = context.WithValue(ctx, userKey{}, user)
	if user == nil {
		return ctx
	}
	return WithLogger(ctx, GetLogger(ctx).With(slog.String("user_id", user.UserID)))
}

// GetAuthUser returns the verified claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := value[*sec.AuthClaims](ctx, userKey{})
	return claims
}

// UserID returns the caller's id, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
