// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fact

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ibis/internal/core/ownership"
	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/pkg/pointer"
	"github.com/taibuivan/ibis/pkg/slice"
	"github.com/taibuivan/ibis/pkg/uuid"
)

// Service orchestrates business rules for facts.
type Service struct {
	repo   Repository
	owners ownership.Store
	logger *slog.Logger
}

// NewService constructs a new fact [Service].
func NewService(repo Repository, owners ownership.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, owners: owners, logger: logger}
}

/*
List returns a filtered page of the user's facts.

Returns:
  - error: VALIDATION_ERROR when an id filter is malformed
*/
func (service *Service) List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Fact, int, error) {
	filter.Tags = slice.Map(filter.Tags, uuid.Canonical)
	filter.Context = uuid.Canonical(filter.Context)
	filter.Period = uuid.Canonical(filter.Period)
	filter.Source = uuid.Canonical(filter.Source)

	v := &validate.Validator{}
	for _, tagID := range filter.Tags {
		if !uuid.Valid(tagID) {
			v.UUID(FieldTag, tagID)
			break
		}
	}

	if filter.Context != "" {
		v.UUID(FieldContext, filter.Context)
	}
	if filter.Period != "" {
		v.UUID(FieldPeriod, filter.Period)
	}
	if filter.Source != "" {
		v.UUID(FieldSource, filter.Source)
	}

	if err := v.Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.List(ctx, userID, filter, limit, offset)
}

// Get returns one of the user's facts.
func (service *Service) Get(ctx context.Context, userID, id string) (*Fact, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}
	return service.repo.FindByID(ctx, userID, id)
}

/*
Create validates and stores a new fact for userID.

Description: Every referenced tag, period and source must belong to the same
user. When a context is set it is added to the tags before storing, so the
returned fact always lists it.

Returns:
  - error: VALIDATION_ERROR with one detail per offending field
*/
func (service *Service) Create(ctx context.Context, userID string, fact *Fact) error {
	if err := service.validate(ctx, userID, fact); err != nil {
		return err
	}

	fact.ID = uuid.New()
	fact.UserID = userID

	if err := service.repo.Create(ctx, fact); err != nil {
		return err
	}

	service.logger.Info("fact_created",
		slog.String("fact_id", fact.ID),
		slog.Int("tags", len(fact.Tags)),
		slog.String("user_id", userID),
	)
	return nil
}

// Update overwrites an existing fact and its tag and source links.
func (service *Service) Update(ctx context.Context, userID string, fact *Fact) error {
	if _, err := service.Get(ctx, userID, fact.ID); err != nil {
		return err
	}

	if err := service.validate(ctx, userID, fact); err != nil {
		return err
	}

	fact.UserID = userID
	if err := service.repo.Update(ctx, fact); err != nil {
		return err
	}

	service.logger.Info("fact_updated", slog.String("fact_id", fact.ID), slog.String("user_id", userID))
	return nil
}

// Delete removes one of the user's facts.
func (service *Service) Delete(ctx context.Context, userID, id string) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	if err := service.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	service.logger.Info("fact_deleted", slog.String("fact_id", id), slog.String("user_id", userID))
	return nil
}

func (service *Service) validate(ctx context.Context, userID string, fact *Fact) error {
	fact.Tags = slice.Unique(slice.Map(fact.Tags, uuid.Canonical))
	fact.Sources = slice.Unique(slice.Map(fact.Sources, uuid.Canonical))
	fact.Context = uuid.CanonicalPtr(pointer.NilIfBlank(fact.Context))
	fact.Period = uuid.CanonicalPtr(pointer.NilIfBlank(fact.Period))

	v := &validate.Validator{}
	v.Required(FieldValue, fact.Value).MaxLen(FieldValue, fact.Value, TextMaxLength)
	if fact.Key != nil {
		v.MaxLen(FieldKey, *fact.Key, TextMaxLength)
	}

	err := ownership.New(service.owners, userID).
		One(FieldContext, ownership.KindTag, fact.Context).
		One(FieldPeriod, ownership.KindPeriod, fact.Period).
		Many(FieldTags, ownership.KindTag, fact.Tags).
		Many(FieldSources, ownership.KindSource, fact.Sources).
		Check(ctx, v)
	if err != nil {
		return err
	}

	if err := v.Err(); err != nil {
		return err
	}

	if fact.Context != nil {
		fact.Tags = slice.Append(fact.Tags, *fact.Context)
	}
	return nil
}
