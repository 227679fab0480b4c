// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Tags carry a slug derived from their name (e.g. "Ancient Rome" becomes
// "ancient-rome") so clients can address them by a readable key.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	accentRemover   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// Accents are stripped after NFD decomposition, the result is lowercased,
// and every run of characters outside [a-z0-9] collapses into one hyphen.
// Letters with no ASCII decomposition (e.g. "ß", CJK) are dropped.
func From(s string) string {
	result, _, err := transform.String(accentRemover, s)
	if err != nil {
		result = s
	}

	result = nonAlphanumeric.ReplaceAllString(strings.ToLower(result), "-")
	return strings.Trim(result, "-")
}
