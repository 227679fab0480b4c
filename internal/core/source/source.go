// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package source manages the documents facts are attributed to, such as a book,
an article or a web page.

A source also exposes the reverse side of the fact/source relation: writing
its "facts" list re-attributes facts to it.
*/
package source

import (
	"strings"
	"time"
)

// Source is a document a user took facts from.
type Source struct {
	ID        string     `json:"id"` // UUIDv7
	UserID    string     `json:"-"`
	Name      string     `json:"name"`
	Accessed  time.Time  `json:"accessed"`
	Author    *string    `json:"author"`
	Publisher *string    `json:"publisher"`
	Published *time.Time `json:"published"`
	Facts     []string   `json:"facts"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// String renders "name, author (YYYY-MM-DD)", omitting absent parts.
func (source Source) String() string {
	var builder strings.Builder
	builder.WriteString(source.Name)

	if source.Author != nil && *source.Author != "" {
		builder.WriteString(", ")
		builder.WriteString(*source.Author)
	}

	if source.Published != nil {
		builder.WriteString(" (")
		builder.WriteString(source.Published.Format(time.DateOnly))
		builder.WriteString(")")
	}

	return builder.String()
}

// # Search & Filtering

// Filter holds parameters for listing sources.
type Filter struct {
	// Query matches name or author, case-insensitively.
	Query string
}

// # Field Identifiers

const (
	FieldName      = "name"
	FieldAuthor    = "author"
	FieldPublisher = "publisher"
	FieldFacts     = "facts"

	// TextMaxLength bounds name, author and publisher.
	TextMaxLength = 128
)
