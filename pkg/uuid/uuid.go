// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for every knowledge-base
record.

Version 7 values sort by creation time, which keeps the PostgreSQL B-tree
indexes append-only and makes "newest first" listings cheap.
*/
package uuid

import "github.com/google/uuid"

const canonicalLength = 36

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s is a UUID in the 36-character hyphenated form.
// Other encodings the parser tolerates (urn:uuid:, braces, bare hex) are
// rejected because PostgreSQL does not cast all of them.
func Valid(s string) bool {
	return len(s) == canonicalLength && uuid.Validate(s) == nil
}

// Canonical returns s in lowercase hyphenated form when it parses as a UUID,
// and s unchanged otherwise. Stored ids and store lookups use this form.
func Canonical(s string) string {
	id, err := uuid.Parse(s)
	if err != nil {
		return s
	}
	return id.String()
}

// CanonicalPtr is [Canonical] for optional references; nil stays nil.
func CanonicalPtr(p *string) *string {
	if p == nil {
		return nil
	}
	canonical := Canonical(*p)
	return &canonical
}
