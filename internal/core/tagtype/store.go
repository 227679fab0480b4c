// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tagtype

import "context"

// Repository defines the user-scoped data access contract for tag types.
type Repository interface {
	List(ctx context.Context, userID string, limit, offset int) ([]*TagType, int, error)
	FindByID(ctx context.Context, userID, id string) (*TagType, error)
	Create(ctx context.Context, tagType *TagType) error
	Update(ctx context.Context, tagType *TagType) error
	Delete(ctx context.Context, userID, id string) error
}
