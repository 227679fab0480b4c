// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ownershiptest provides an in-memory [ownership.Store] for service tests.
package ownershiptest

import (
	"context"
	"sync"

	"github.com/taibuivan/ibis/internal/core/ownership"
)

// Store is an in-memory ownership registry.
type Store struct {
	mu     sync.Mutex
	owners map[ownership.Kind]map[string]string
	// Err, when set, is returned from every lookup.
	Err error
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{owners: make(map[ownership.Kind]map[string]string)}
}

// Add records that id of kind belongs to userID.
func (store *Store) Add(kind ownership.Kind, id, userID string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.owners[kind] == nil {
		store.owners[kind] = make(map[string]string)
	}
	store.owners[kind][id] = userID
}

// Owners implements [ownership.Store].
func (store *Store) Owners(_ context.Context, kind ownership.Kind, ids []string) (map[string]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return nil, store.Err
	}

	found := make(map[string]string, len(ids))
	for _, id := range ids {
		if owner, ok := store.owners[kind][id]; ok {
			found[id] = owner
		}
	}
	return found, nil
}
