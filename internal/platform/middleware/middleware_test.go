// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ibis/internal/platform/constants"
	"github.com/taibuivan/ibis/internal/platform/ctxutil"
	"github.com/taibuivan/ibis/internal/platform/middleware"
	"github.com/taibuivan/ibis/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (verifier stubVerifier) VerifyToken(string) (*sec.AuthClaims, error) {
	return verifier.claims, verifier.err
}

type stubConfig struct {
	development bool
	origins     []string
}

func (cfg stubConfig) IsDevelopment() bool { return cfg.development }
func (cfg stubConfig) Origins() []string   { return cfg.origins }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func TestAuthenticate(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "user-1"}

	tests := []struct {
		name     string
		header   string
		verifier stubVerifier
		status   int
		userID   string
	}{
		{"anonymous", "", stubVerifier{}, http.StatusOK, ""},
		{"valid_bearer", "Bearer abc", stubVerifier{claims: claims}, http.StatusOK, "user-1"},
		{"lowercase_scheme", "bearer abc", stubVerifier{claims: claims}, http.StatusOK, "user-1"},
		{"wrong_scheme", "Basic abc", stubVerifier{claims: claims}, http.StatusUnauthorized, ""},
		{"bad_token", "Bearer abc", stubVerifier{err: errors.New("expired")}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenUserID string
			next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				if user := ctxutil.GetAuthUser(request.Context()); user != nil {
					seenUserID = user.UserID
				}
			})

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			recorder := httptest.NewRecorder()

			middleware.Authenticate(tt.verifier)(next).ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.userID, seenUserID)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.RequireAuth(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "user-1"}))
	recorder = httptest.NewRecorder()
	middleware.RequireAuth(okHandler).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRequestID(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.RequestID()(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "given")
	recorder = httptest.NewRecorder()
	middleware.RequestID()(okHandler).ServeHTTP(recorder, request)
	assert.Equal(t, "given", recorder.Header().Get(constants.HeaderXRequestID))
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitWith(ctx, 0.001, 2)(okHandler)

	statuses := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "203.0.113.7:4242"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		statuses = append(statuses, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestCORS(t *testing.T) {
	handler := middleware.CORS(stubConfig{origins: []string{"https://notes.example"}})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://notes.example")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "https://notes.example", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestPanicRecovery(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	recorder := httptest.NewRecorder()
	middleware.PanicRecovery(nil)(panicking).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXForwardedFor, "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", middleware.RealIP(request))
}
