// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/ibis/internal/core/ownership"
	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/pkg/pointer"
	"github.com/taibuivan/ibis/pkg/slice"
	"github.com/taibuivan/ibis/pkg/uuid"
)

// Service orchestrates business rules for sources.
type Service struct {
	repo   Repository
	owners ownership.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new source [Service].
func NewService(repo Repository, owners ownership.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, owners: owners, logger: logger, now: time.Now}
}

// List returns a filtered page of the user's sources.
func (service *Service) List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Source, int, error) {
	return service.repo.List(ctx, userID, filter, limit, offset)
}

// Get returns one of the user's sources.
func (service *Service) Get(ctx context.Context, userID, id string) (*Source, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}
	return service.repo.FindByID(ctx, userID, id)
}

/*
Create validates and stores a new source for userID.

Description: An omitted access time defaults to now. Every fact id listed
must belong to the same user.

Returns:
  - error: VALIDATION_ERROR on field or ownership violations
*/
func (service *Service) Create(ctx context.Context, userID string, source *Source) error {
	if source.Accessed.IsZero() {
		source.Accessed = service.now().UTC()
	}

	if err := service.validate(ctx, userID, source); err != nil {
		return err
	}

	source.ID = uuid.New()
	source.UserID = userID

	if err := service.repo.Create(ctx, source); err != nil {
		return err
	}

	service.logger.Info("source_created",
		slog.String("source_id", source.ID),
		slog.String("user_id", userID),
		slog.Int("facts", len(source.Facts)),
	)
	return nil
}

// Update overwrites an existing source. An omitted access time keeps the stored one.
func (service *Service) Update(ctx context.Context, userID string, source *Source) error {
	existing, err := service.Get(ctx, userID, source.ID)
	if err != nil {
		return err
	}

	if source.Accessed.IsZero() {
		source.Accessed = existing.Accessed
	}

	if err := service.validate(ctx, userID, source); err != nil {
		return err
	}

	source.UserID = userID
	if err := service.repo.Update(ctx, source); err != nil {
		return err
	}

	service.logger.Info("source_updated", slog.String("source_id", source.ID), slog.String("user_id", userID))
	return nil
}

// Delete removes one of the user's sources.
func (service *Service) Delete(ctx context.Context, userID, id string) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	if err := service.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	service.logger.Info("source_deleted", slog.String("source_id", id), slog.String("user_id", userID))
	return nil
}

func (service *Service) validate(ctx context.Context, userID string, source *Source) error {
	source.Facts = slice.Unique(slice.Map(source.Facts, uuid.Canonical))

	v := &validate.Validator{}
	v.Required(FieldName, source.Name).
		MaxLen(FieldName, source.Name, TextMaxLength).
		MaxLen(FieldAuthor, pointer.Val(source.Author), TextMaxLength).
		MaxLen(FieldPublisher, pointer.Val(source.Publisher), TextMaxLength)

	err := ownership.New(service.owners, userID).
		Many(FieldFacts, ownership.KindFact, source.Facts).
		Check(ctx, v)
	if err != nil {
		return err
	}

	return v.Err()
}
