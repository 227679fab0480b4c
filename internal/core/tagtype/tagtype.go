// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tagtype manages the categories a user sorts tags into (person,
place, topic ...). Deleting a type leaves its tags untyped.
*/
package tagtype

import "time"

// TagType groups tags of the same nature.
type TagType struct {
	ID        string    `json:"id"` // UUIDv7
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String returns the type name.
func (tagType TagType) String() string { return tagType.Name }

// # Field Identifiers

const (
	FieldName = "name"

	// NameMaxLength bounds the name column.
	NameMaxLength = 64
)
