// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ibis/internal/api"
	"github.com/taibuivan/ibis/internal/core/alias"
	"github.com/taibuivan/ibis/internal/core/fact"
	"github.com/taibuivan/ibis/internal/core/period"
	"github.com/taibuivan/ibis/internal/core/source"
	"github.com/taibuivan/ibis/internal/core/tag"
	"github.com/taibuivan/ibis/internal/core/tagtype"
	"github.com/taibuivan/ibis/internal/platform/config"
	"github.com/taibuivan/ibis/internal/platform/constants"
	"github.com/taibuivan/ibis/internal/platform/sec"
	"github.com/taibuivan/ibis/internal/users/account"
	"github.com/taibuivan/ibis/internal/users/auth"
)

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "test", RateLimitRPS: 1000, RateLimitBurst: 1000, AllowedOrigins: "https://app.ibis.test"}
	server := api.NewServer(ctx, cfg, logger, sec.NewTokenServiceFromKeys(key, &key.PublicKey, constants.AuthIssuer), api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(nil, false),
		Account:   account.NewHandler(nil),
		Sources:   source.NewHandler(nil),
		Periods:   period.NewHandler(nil),
		TagTypes:  tagtype.NewHandler(nil),
		Tags:      tag.NewHandler(nil),
		Aliases:   alias.NewHandler(nil),
		Facts:     fact.NewHandler(nil),
	})
	return server.Handler()
}

func TestServer_PrivateRoutesRequireToken(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	paths := []string{
		"/api/v1/sources", "/api/v1/periods", "/api/v1/tag_types", "/api/v1/tags",
		"/api/v1/aliases", "/api/v1/facts", "/api/v1/account", "/api/v1/tags/by-slug/rome",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			request := httptest.NewRequest(http.MethodGet, path, nil)
			request.Header.Set(constants.HeaderAuthorization, "Bearer not-a-jwt")
			recorder = httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

func TestServer_AuthErrorsCarryCORSHeaders(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	request := httptest.NewRequest(http.MethodGet, "/api/v1/facts", nil)
	request.Header.Set(constants.HeaderOrigin, "https://app.ibis.test")
	request.Header.Set(constants.HeaderAuthorization, "Bearer not-a-jwt")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "https://app.ibis.test", recorder.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/api/v1/facts", nil)
	preflight.Header.Set(constants.HeaderOrigin, "https://app.ibis.test")
	preflight.Header.Set(constants.HeaderAuthorization, "Bearer not-a-jwt")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestServer_Health(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckSessions: func(context.Context) error { return errors.New("connection refused") },
	})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}
