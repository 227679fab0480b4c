// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package alias

import "context"

// Repository defines the user-scoped data access contract for aliases.
type Repository interface {
	List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Alias, int, error)
	FindByID(ctx context.Context, userID, id string) (*Alias, error)
	Create(ctx context.Context, alias *Alias) error
	Update(ctx context.Context, alias *Alias) error
	Delete(ctx context.Context, userID, id string) error
}
