// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts path parameters, query values, JSON bodies and
the caller's identity from an HTTP request.

Every failure is returned as an [apperr.AppError] so handlers can pass it
straight to respond.Error.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ibis/internal/platform/apperr"
	"github.com/taibuivan/ibis/internal/platform/ctxutil"
	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/pkg/uuid"
)

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 1 << 20

var errBodyTooLarge = apperr.ValidationError("Request body too large")

/*
DecodeJSON decodes exactly one JSON value from the body into target.

Decoding onto an already populated struct only overwrites the keys present in
the body, which is what PATCH relies on. Trailing data after the value is
rejected.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, MaxBodyBytes))

	if err := decoder.Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return validate.ErrInvalidJSON
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param returns the named chi path parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// PathID returns the {id} path parameter in canonical UUID form. Values that
// are not UUIDs are returned unchanged so the service reports them as missing.
func PathID(request *http.Request) string {
	return uuid.Canonical(Param(request, "id"))
}

// Query returns a trimmed query-string value, or "" when absent.
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

// RequiredUserID returns the authenticated caller's id, or 401.
func RequiredUserID(request *http.Request) (string, error) {
	userID := ctxutil.UserID(request.Context())
	if userID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}
