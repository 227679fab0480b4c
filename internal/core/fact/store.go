// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fact

import "context"

// Repository defines the user-scoped data access contract for facts.
type Repository interface {

	/*
		List returns a filtered page of the user's facts, newest first.

		Returns:
		  - []*Fact: Page of facts with their tag and source ids
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Fact, int, error)

	FindByID(ctx context.Context, userID, id string) (*Fact, error)

	// Create inserts the fact and its tag and source links in one transaction.
	// The context tag is always linked.
	Create(ctx context.Context, fact *Fact) error

	// Update overwrites the fact and replaces its links in one transaction.
	Update(ctx context.Context, fact *Fact) error

	Delete(ctx context.Context, userID, id string) error
}
