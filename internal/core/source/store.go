// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import "context"

// Repository defines the user-scoped data access contract for sources.
type Repository interface {

	/*
		List returns a filtered page of the user's sources and the total count.

		Parameters:
		  - ctx: context.Context
		  - userID: string
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Source: Page of sources, each with its fact ids
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Source, int, error)

	/*
		FindByID retrieves one of the user's sources.

		Returns:
		  - *Source: Hydrated entity
		  - error: dberr.ErrNotFound if missing or owned by another user
	*/
	FindByID(ctx context.Context, userID, id string) (*Source, error)

	// Create inserts the source and its fact links atomically.
	Create(ctx context.Context, source *Source) error

	// Update overwrites the source and replaces its fact links atomically.
	Update(ctx context.Context, source *Source) error

	// Delete removes the source; its facts survive with one source fewer.
	Delete(ctx context.Context, userID, id string) error
}
