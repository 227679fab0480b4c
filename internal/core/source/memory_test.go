// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source_test

import (
	"context"
	"strings"
	"sync"

	"github.com/taibuivan/ibis/internal/core/source"
	"github.com/taibuivan/ibis/internal/platform/dberr"
)

type memoryRepository struct {
	mu      sync.Mutex
	sources map[string]source.Source
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{sources: make(map[string]source.Source)}
}

func (repository *memoryRepository) List(_ context.Context, userID string, filter source.Filter, limit, offset int) ([]*source.Source, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	query := strings.ToLower(filter.Query)
	owned := []*source.Source{}
	for _, s := range repository.sources {
		if s.UserID != userID || !strings.Contains(strings.ToLower(s.Name), query) {
			continue
		}
		copied := s
		owned = append(owned, &copied)
	}
	return owned, len(owned), nil
}

func (repository *memoryRepository) FindByID(_ context.Context, userID, id string) (*source.Source, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	s, ok := repository.sources[id]
	if !ok || s.UserID != userID {
		return nil, dberr.ErrNotFound
	}
	return &s, nil
}

func (repository *memoryRepository) Create(_ context.Context, s *source.Source) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.sources[s.ID] = *s
	return nil
}

func (repository *memoryRepository) Update(ctx context.Context, s *source.Source) error {
	return repository.Create(ctx, s)
}

func (repository *memoryRepository) Delete(_ context.Context, userID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if s, ok := repository.sources[id]; !ok || s.UserID != userID {
		return dberr.ErrNotFound
	}
	delete(repository.sources, id)
	return nil
}
