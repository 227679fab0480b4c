// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package period

import "context"

// Repository defines the user-scoped data access contract for periods.
//
// Every method filters by the owning user; rows of other users behave as if
// they did not exist.
type Repository interface {
	// List returns a page of the user's periods and the total count.
	List(ctx context.Context, userID string, limit, offset int) ([]*Period, int, error)

	// FindByID returns one period or dberr.ErrNotFound.
	FindByID(ctx context.Context, userID, id string) (*Period, error)

	// Create inserts a new period.
	Create(ctx context.Context, period *Period) error

	// Update overwrites both bounds of an existing period.
	Update(ctx context.Context, period *Period) error

	// Delete removes a period. Facts referencing it are detached.
	Delete(ctx context.Context, userID, id string) error
}
