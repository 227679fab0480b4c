// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import "context"

// Repository defines the user-scoped data access contract for tags.
type Repository interface {

	/*
		List returns a filtered page of the user's tags and the total count.

		Returns:
		  - []*Tag: Page of tags with related and reverse-related ids
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Tag, int, error)

	// FindByID returns one tag or dberr.ErrNotFound.
	FindByID(ctx context.Context, userID, id string) (*Tag, error)

	// FindBySlug returns the oldest of the user's tags carrying slug.
	FindBySlug(ctx context.Context, userID, slug string) (*Tag, error)

	/*
		Create inserts the tag and its outgoing relations atomically.

		Returns:
		  - error: apperr CONFLICT when the name is already used by this user
	*/
	Create(ctx context.Context, tag *Tag) error

	// Update overwrites the tag and replaces its outgoing relations atomically.
	Update(ctx context.Context, tag *Tag) error

	// Delete removes the tag, its aliases and every fact using it as context.
	Delete(ctx context.Context, userID, id string) error
}
