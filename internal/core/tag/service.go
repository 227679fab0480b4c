// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ibis/internal/core/ownership"
	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/pkg/pointer"
	"github.com/taibuivan/ibis/pkg/slice"
	"github.com/taibuivan/ibis/pkg/slug"
	"github.com/taibuivan/ibis/pkg/uuid"
)

// Service orchestrates business rules for tags.
type Service struct {
	repo   Repository
	owners ownership.Store
	logger *slog.Logger
}

// NewService constructs a new tag [Service].
func NewService(repo Repository, owners ownership.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, owners: owners, logger: logger}
}

/*
List returns a filtered page of the user's tags.

Returns:
  - error: VALIDATION_ERROR when the type filter is not an id
*/
func (service *Service) List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Tag, int, error) {
	filter.Type = uuid.Canonical(filter.Type)

	v := &validate.Validator{}
	if filter.Type != "" {
		v.UUID(FieldType, filter.Type)
	}
	if err := v.Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.List(ctx, userID, filter, limit, offset)
}

// Get returns one of the user's tags.
func (service *Service) Get(ctx context.Context, userID, id string) (*Tag, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}
	return service.repo.FindByID(ctx, userID, id)
}

// GetBySlug returns the user's tag addressed by its slug.
func (service *Service) GetBySlug(ctx context.Context, userID, tagSlug string) (*Tag, error) {
	return service.repo.FindBySlug(ctx, userID, slug.From(tagSlug))
}

/*
Create validates and stores a new tag for userID.

Description: The slug is derived from the name. The type and every related
tag must belong to the same user.

Returns:
  - error: VALIDATION_ERROR or CONFLICT (duplicate name)
*/
func (service *Service) Create(ctx context.Context, userID string, tag *Tag) error {
	if err := service.validate(ctx, userID, tag); err != nil {
		return err
	}

	tag.ID = uuid.New()
	tag.UserID = userID
	tag.TaggedBy = []string{}

	if err := service.repo.Create(ctx, tag); err != nil {
		return err
	}

	service.logger.Info("tag_created", slog.String("tag_id", tag.ID), slog.String("user_id", userID))
	return nil
}

// Update overwrites an existing tag and its outgoing relations.
func (service *Service) Update(ctx context.Context, userID string, tag *Tag) error {
	if _, err := service.Get(ctx, userID, tag.ID); err != nil {
		return err
	}

	if err := service.validate(ctx, userID, tag); err != nil {
		return err
	}

	tag.UserID = userID
	if err := service.repo.Update(ctx, tag); err != nil {
		return err
	}

	service.logger.Info("tag_updated", slog.String("tag_id", tag.ID), slog.String("user_id", userID))
	return nil
}

// Delete removes a tag together with its aliases and the facts it is context of.
func (service *Service) Delete(ctx context.Context, userID, id string) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	if err := service.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	service.logger.Info("tag_deleted", slog.String("tag_id", id), slog.String("user_id", userID))
	return nil
}

func (service *Service) validate(ctx context.Context, userID string, tag *Tag) error {
	tag.Tags = slice.Unique(slice.Map(tag.Tags, uuid.Canonical))
	tag.Type = uuid.CanonicalPtr(pointer.NilIfBlank(tag.Type))
	tag.Slug = slug.From(tag.Name)

	v := &validate.Validator{}
	v.Required(FieldName, tag.Name).MaxLen(FieldName, tag.Name, NameMaxLength)

	err := ownership.New(service.owners, userID).
		One(FieldType, ownership.KindTagType, tag.Type).
		Many(FieldTags, ownership.KindTag, tag.Tags).
		Check(ctx, v)
	if err != nil {
		return err
	}

	return v.Err()
}
