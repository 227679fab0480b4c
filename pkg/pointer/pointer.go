// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Nullable columns (a tag's type, a fact's period, a period's bounds) are
modelled as pointers; these helpers keep that plumbing short.
*/
package pointer

import "strings"

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, or returns the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NilIfBlank treats a blank optional reference the same as an absent one.
//
//	NilIfBlank(To(""))    // nil
//	NilIfBlank(To(" x ")) // pointer to " x " (not trimmed)
func NilIfBlank(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return p
}
