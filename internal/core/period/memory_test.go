// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package period_test

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/ibis/internal/core/period"
	"github.com/taibuivan/ibis/internal/platform/dberr"
)

// memoryRepository is an in-memory [period.Repository].
type memoryRepository struct {
	mu      sync.Mutex
	periods map[string]period.Period
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{periods: make(map[string]period.Period)}
}

func (repository *memoryRepository) List(_ context.Context, userID string, limit, offset int) ([]*period.Period, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var owned []*period.Period
	for _, p := range repository.periods {
		if p.UserID == userID {
			copied := p
			owned = append(owned, &copied)
		}
	}

	total := len(owned)
	if offset >= total {
		return []*period.Period{}, total, nil
	}
	return owned[offset:min(offset+limit, total)], total, nil
}

func (repository *memoryRepository) FindByID(_ context.Context, userID, id string) (*period.Period, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	p, ok := repository.periods[id]
	if !ok || p.UserID != userID {
		return nil, dberr.ErrNotFound
	}
	return &p, nil
}

func (repository *memoryRepository) Create(_ context.Context, p *period.Period) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	repository.periods[p.ID] = *p
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, p *period.Period) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.periods[p.ID]
	if !ok || stored.UserID != p.UserID {
		return dberr.ErrNotFound
	}
	p.CreatedAt, p.UpdatedAt = stored.CreatedAt, time.Now()
	repository.periods[p.ID] = *p
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, userID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	p, ok := repository.periods[id]
	if !ok || p.UserID != userID {
		return dberr.ErrNotFound
	}
	delete(repository.periods, id)
	return nil
}
