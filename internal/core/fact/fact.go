// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fact manages facts, the atomic claims of the knowledge base.

A fact is a value, optionally keyed ("born: 63 BC"), filed under tags, scoped
to a period and attributed to sources. Its optional context is the tag the
fact is primarily about; the context is always also one of its tags.
*/
package fact

import "time"

// Fact is one atomic claim owned by one user.
type Fact struct {
	ID      string   `json:"id"` // UUIDv7
	UserID  string   `json:"-"`
	Key     *string  `json:"key"`
	Value   string   `json:"value"`
	Context *string  `json:"context"`
	Period  *string  `json:"period"`
	Tags    []string `json:"tags"`
	Sources []string `json:"sources"`

	// ContextName is hydrated by the store for display only.
	ContextName string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

/*
String renders the fact for humans.

	"Caesar - born: 100 BC"  // context, key and value
	"Caesar - 100 BC"        // context and value
	"born: 100 BC"           // key and value
	"100 BC"                 // value only
*/
func (fact Fact) String() string {
	text := fact.Value
	if fact.Key != nil && *fact.Key != "" {
		text = *fact.Key + ": " + text
	}
	if fact.ContextName != "" {
		text = fact.ContextName + " - " + text
	}
	return text
}

// # Search & Filtering

// Filter holds parameters for listing facts. Empty fields are ignored.
type Filter struct {
	// Tags matches facts carrying any of the given tag ids.
	Tags    []string
	Context string
	Period  string
	// Key matches the key exactly.
	Key    string
	Source string
}

// # Field Identifiers

const (
	FieldKey     = "key"
	FieldValue   = "value"
	FieldContext = "context"
	FieldPeriod  = "period"
	FieldTags    = "tags"
	FieldSources = "sources"

	// Filter-only parameters.
	FieldTag    = "tag"
	FieldSource = "source"

	TextMaxLength = 128
)
