// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package alias

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ibis/internal/core/ownership"
	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/pkg/uuid"
)

// Service orchestrates business rules for aliases.
type Service struct {
	repo   Repository
	owners ownership.Store
	logger *slog.Logger
}

// NewService constructs a new alias [Service].
func NewService(repo Repository, owners ownership.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, owners: owners, logger: logger}
}

// List returns a page of the user's aliases, optionally narrowed to one tag.
func (service *Service) List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Alias, int, error) {
	filter.Tag = uuid.Canonical(filter.Tag)
	if filter.Tag != "" {
		if err := (&validate.Validator{}).UUID(FieldTag, filter.Tag).Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.List(ctx, userID, filter, limit, offset)
}

// Get returns one of the user's aliases.
func (service *Service) Get(ctx context.Context, userID, id string) (*Alias, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}
	return service.repo.FindByID(ctx, userID, id)
}

// Create validates and stores a new alias for userID.
func (service *Service) Create(ctx context.Context, userID string, alias *Alias) error {
	if err := service.validate(ctx, userID, alias); err != nil {
		return err
	}

	alias.ID = uuid.New()
	alias.UserID = userID

	if err := service.repo.Create(ctx, alias); err != nil {
		return err
	}

	service.logger.Info("alias_created",
		slog.String("alias_id", alias.ID),
		slog.String("tag_id", alias.Tag),
		slog.String("user_id", userID),
	)
	return nil
}

// Update overwrites an existing alias.
func (service *Service) Update(ctx context.Context, userID string, alias *Alias) error {
	if _, err := service.Get(ctx, userID, alias.ID); err != nil {
		return err
	}

	if err := service.validate(ctx, userID, alias); err != nil {
		return err
	}

	alias.UserID = userID
	if err := service.repo.Update(ctx, alias); err != nil {
		return err
	}

	service.logger.Info("alias_updated", slog.String("alias_id", alias.ID), slog.String("user_id", userID))
	return nil
}

// Delete removes one of the user's aliases.
func (service *Service) Delete(ctx context.Context, userID, id string) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	if err := service.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	service.logger.Info("alias_deleted", slog.String("alias_id", id), slog.String("user_id", userID))
	return nil
}

func (service *Service) validate(ctx context.Context, userID string, alias *Alias) error {
	alias.Tag = uuid.Canonical(alias.Tag)

	v := &validate.Validator{}
	v.Required(FieldName, alias.Name).
		MaxLen(FieldName, alias.Name, NameMaxLength).
		Required(FieldTag, alias.Tag)

	err := ownership.New(service.owners, userID).
		One(FieldTag, ownership.KindTag, &alias.Tag).
		Check(ctx, v)
	if err != nil {
		return err
	}

	return v.Err()
}
