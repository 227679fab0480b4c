// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package alias manages alternative names that resolve to a tag.
package alias

import "time"

// Alias is an alternative name for one of the user's tags.
type Alias struct {
	ID     string `json:"id"` // UUIDv7
	UserID string `json:"-"`
	Name   string `json:"name"`
	Tag    string `json:"tag"`

	// TagName is hydrated by the store for display only.
	TagName string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String renders "alias → tag" when the tag name is known.
func (alias Alias) String() string {
	if alias.TagName == "" {
		return alias.Name
	}
	return alias.Name + " → " + alias.TagName
}

// Filter holds parameters for listing aliases.
type Filter struct {
	Query string
	Tag   string
}

const (
	FieldName = "name"
	FieldTag  = "tag"

	NameMaxLength = 64
)
