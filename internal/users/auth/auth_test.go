// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ibis/internal/platform/apperr"
	"github.com/taibuivan/ibis/internal/platform/constants"
	"github.com/taibuivan/ibis/internal/platform/ctxutil"
	"github.com/taibuivan/ibis/internal/platform/sec"
	"github.com/taibuivan/ibis/internal/users/auth"
)

type harness struct {
	service  *auth.Service
	sessions *memorySessions
	tokens   *sec.TokenService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, constants.AuthIssuer)
	sessions := newMemorySessions()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &harness{
		service:  auth.NewService(newMemoryUsers(), sessions, tokens, logger),
		sessions: sessions,
		tokens:   tokens,
	}
}

func (h *harness) register(t *testing.T, username string) *auth.User {
	t.Helper()
	user, err := h.service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return user
}

func TestService_Register_Validation(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name   string
		input  auth.RegisterInput
		fields []string
	}{
		{"empty", auth.RegisterInput{}, []string{auth.FieldUsername, auth.FieldUsername, auth.FieldEmail, auth.FieldEmail, auth.FieldPassword, auth.FieldPassword}},
		{"short_password", auth.RegisterInput{Username: "livy", Email: "livy@example.com", Password: "short"}, []string{auth.FieldPassword}},
		{"bad_email", auth.RegisterInput{Username: "livy", Email: "livy", Password: "long enough"}, []string{auth.FieldEmail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.service.Register(context.Background(), tt.input)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.fields, ae.Fields())
		})
	}
}

func TestService_Register_Conflict(t *testing.T) {
	h := newHarness(t)
	user := h.register(t, "tacitus")
	assert.Equal(t, "tacitus@example.com", user.Email)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	_, err := h.service.Register(context.Background(), auth.RegisterInput{
		Username: "other", Email: "TACITUS@example.com", Password: "correct horse battery",
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeConflict, ae.Code)
}

func TestService_Login(t *testing.T) {
	h := newHarness(t)
	user := h.register(t, "suetonius")
	ctx := context.Background()

	for _, login := range []string{"suetonius", "suetonius@example.com"} {
		session, err := h.service.Login(ctx, auth.LoginInput{Login: login, Password: "correct horse battery"})
		require.NoError(t, err)

		claims, err := h.tokens.VerifyToken(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.NotEmpty(t, session.RefreshToken)
	}

	_, err := h.service.Login(ctx, auth.LoginInput{Login: "suetonius", Password: "wrong password"})
	assert.Equal(t, apperr.CodeUnauthorized, apperr.As(err).Code)

	_, err = h.service.Login(ctx, auth.LoginInput{Login: "nobody", Password: "wrong password"})
	assert.Equal(t, apperr.CodeUnauthorized, apperr.As(err).Code)
}

func TestService_RefreshRotates(t *testing.T) {
	h := newHarness(t)
	h.register(t, "plutarch")
	ctx := context.Background()

	first, err := h.service.Login(ctx, auth.LoginInput{Login: "plutarch", Password: "correct horse battery"})
	require.NoError(t, err)

	second, err := h.service.RefreshSession(ctx, first.RefreshToken, "test", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, 1, h.sessions.count())

	// A refresh token is single use.
	_, err = h.service.RefreshSession(ctx, first.RefreshToken, "test", "127.0.0.1")
	assert.Equal(t, apperr.CodeUnauthorized, apperr.As(err).Code)

	require.NoError(t, h.service.Logout(ctx, second.RefreshToken))
	require.NoError(t, h.service.Logout(ctx, second.RefreshToken))
	assert.Zero(t, h.sessions.count())
}

func TestService_RevokeAllSessions(t *testing.T) {
	h := newHarness(t)
	user := h.register(t, "sallust")
	ctx := context.Background()

	for range 3 {
		_, err := h.service.Login(ctx, auth.LoginInput{Login: "sallust", Password: "correct horse battery"})
		require.NoError(t, err)
	}
	require.Equal(t, 3, h.sessions.count())

	require.NoError(t, h.service.RevokeAllSessions(ctx, user.ID))
	assert.Zero(t, h.sessions.count())
}

func TestHandler_LoginSetsRefreshCookie(t *testing.T) {
	h := newHarness(t)
	h.register(t, "polybius")
	routes := auth.NewHandler(h.service, true).Routes()

	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"login":"polybius","password":"correct horse battery"}`))
	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Bearer", body.Data.TokenType)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.RefreshTokenCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	// Refresh with the cookie returns a new access token and a new cookie.
	request = httptest.NewRequest(http.MethodPost, "/refresh", nil)
	request.AddCookie(cookies[0])
	recorder = httptest.NewRecorder()
	routes.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, recorder.Result().Cookies(), 1)
	assert.NotEqual(t, cookies[0].Value, recorder.Result().Cookies()[0].Value)
}

func TestHandler_LogoutRequiresAuth(t *testing.T) {
	h := newHarness(t)
	routes := auth.NewHandler(h.service, false).Routes()

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodPost, "/logout", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "someone"}))
	recorder = httptest.NewRecorder()
	routes.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
