// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/ibis/internal/core/tag"
	"github.com/taibuivan/ibis/internal/platform/apperr"
	"github.com/taibuivan/ibis/internal/platform/dberr"
)

type memoryRepository struct {
	mu   sync.Mutex
	tags map[string]tag.Tag
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{tags: make(map[string]tag.Tag)}
}

// hydrate fills the reverse relation the way the SQL subquery does.
func (repository *memoryRepository) hydrate(t tag.Tag) *tag.Tag {
	t.TaggedBy = []string{}
	for _, other := range repository.tags {
		if slices.Contains(other.Tags, t.ID) {
			t.TaggedBy = append(t.TaggedBy, other.ID)
		}
	}
	sort.Strings(t.TaggedBy)
	return &t
}

func (repository *memoryRepository) List(_ context.Context, userID string, filter tag.Filter, limit, offset int) ([]*tag.Tag, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	query := strings.ToLower(filter.Query)
	owned := []*tag.Tag{}
	for _, t := range repository.tags {
		if t.UserID != userID || !strings.Contains(strings.ToLower(t.Name), query) {
			continue
		}
		if filter.Type != "" && (t.Type == nil || *t.Type != filter.Type) {
			continue
		}
		owned = append(owned, repository.hydrate(t))
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Name < owned[j].Name })
	return owned, len(owned), nil
}

func (repository *memoryRepository) FindByID(_ context.Context, userID, id string) (*tag.Tag, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	t, ok := repository.tags[id]
	if !ok || t.UserID != userID {
		return nil, dberr.ErrNotFound
	}
	return repository.hydrate(t), nil
}

func (repository *memoryRepository) FindBySlug(_ context.Context, userID, slug string) (*tag.Tag, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, t := range repository.tags {
		if t.UserID == userID && t.Slug == slug {
			return repository.hydrate(t), nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *memoryRepository) Create(_ context.Context, t *tag.Tag) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, other := range repository.tags {
		if other.ID != t.ID && other.UserID == t.UserID && other.Name == t.Name {
			return apperr.Conflict("An object with this name already exists")
		}
	}
	repository.tags[t.ID] = *t
	t.TaggedBy = repository.hydrate(*t).TaggedBy
	return nil
}

func (repository *memoryRepository) Update(ctx context.Context, t *tag.Tag) error {
	return repository.Create(ctx, t)
}

func (repository *memoryRepository) Delete(_ context.Context, userID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if t, ok := repository.tags[id]; !ok || t.UserID != userID {
		return dberr.ErrNotFound
	}
	delete(repository.tags, id)
	for key, other := range repository.tags {
		other.Tags = slices.DeleteFunc(slices.Clone(other.Tags), func(related string) bool { return related == id })
		repository.tags[key] = other
	}
	return nil
}
