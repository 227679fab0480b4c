// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tag manages the topics, people and places facts are filed under.

# Core Responsibility

  - Naming: a tag name is unique per user; its slug is derived, not stored by clients.
  - Typing: an optional [tagtype.TagType] classifies the tag.
  - Relations: a tag may tag other tags. The relation is directed; the
    reverse side is exposed read-only as "tagged_by".
*/
package tag

import "time"

// Tag is a named topic owned by one user.
type Tag struct {
	ID        string    `json:"id"` // UUIDv7
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"` // read-only
	Text      *string   `json:"text"`
	Type      *string   `json:"type"`
	Tags      []string  `json:"tags"`
	TaggedBy  []string  `json:"tagged_by"` // read-only
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String returns the tag name.
func (tag Tag) String() string { return tag.Name }

// # Search & Filtering

// Filter holds parameters for listing tags.
type Filter struct {
	// Query matches the name, case-insensitively.
	Query string
	// Type restricts results to one tag type id.
	Type string
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldType = "type"
	FieldTags = "tags"

	// NameMaxLength bounds the name column.
	NameMaxLength = 64
)
