// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fact_test

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/ibis/internal/core/fact"
	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/pkg/slice"
)

// memoryRepository mirrors the Postgres store, including the context link.
type memoryRepository struct {
	mu    sync.Mutex
	facts map[string]fact.Fact
	order []string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{facts: make(map[string]fact.Fact)}
}

func matches(f fact.Fact, filter fact.Filter) bool {
	if len(filter.Tags) > 0 && !slices.ContainsFunc(filter.Tags, func(id string) bool { return slices.Contains(f.Tags, id) }) {
		return false
	}
	if filter.Context != "" && (f.Context == nil || *f.Context != filter.Context) {
		return false
	}
	if filter.Period != "" && (f.Period == nil || *f.Period != filter.Period) {
		return false
	}
	if filter.Key != "" && (f.Key == nil || *f.Key != filter.Key) {
		return false
	}
	if filter.Source != "" && !slices.Contains(f.Sources, filter.Source) {
		return false
	}
	return true
}

func (repository *memoryRepository) List(_ context.Context, userID string, filter fact.Filter, _, _ int) ([]*fact.Fact, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	owned := []*fact.Fact{}
	for _, id := range slices.Backward(repository.order) {
		f, ok := repository.facts[id]
		if !ok || f.UserID != userID || !matches(f, filter) {
			continue
		}
		owned = append(owned, &f)
	}
	return owned, len(owned), nil
}

func (repository *memoryRepository) FindByID(_ context.Context, userID, id string) (*fact.Fact, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	f, ok := repository.facts[id]
	if !ok || f.UserID != userID {
		return nil, dberr.ErrNotFound
	}
	return &f, nil
}

func (repository *memoryRepository) Create(_ context.Context, f *fact.Fact) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.facts[f.ID]; !ok {
		repository.order = append(repository.order, f.ID)
	}
	if f.Context != nil {
		f.Tags = slice.Append(f.Tags, *f.Context)
	}
	repository.facts[f.ID] = *f
	return nil
}

func (repository *memoryRepository) Update(ctx context.Context, f *fact.Fact) error {
	return repository.Create(ctx, f)
}

func (repository *memoryRepository) Delete(_ context.Context, userID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if f, ok := repository.facts[id]; !ok || f.UserID != userID {
		return dberr.ErrNotFound
	}
	delete(repository.facts, id)
	return nil
}
