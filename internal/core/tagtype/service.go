// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tagtype

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/pkg/uuid"
)

// Service orchestrates business rules for tag types.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new tag type [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) List(ctx context.Context, userID string, limit, offset int) ([]*TagType, int, error) {
	return service.repo.List(ctx, userID, limit, offset)
}

func (service *Service) Get(ctx context.Context, userID, id string) (*TagType, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}
	return service.repo.FindByID(ctx, userID, id)
}

func (service *Service) Create(ctx context.Context, userID string, tagType *TagType) error {
	if err := validateTagType(tagType); err != nil {
		return err
	}

	tagType.ID = uuid.New()
	tagType.UserID = userID

	if err := service.repo.Create(ctx, tagType); err != nil {
		return err
	}

	service.logger.Info("tag_type_created", slog.String("tag_type_id", tagType.ID), slog.String("user_id", userID))
	return nil
}

func (service *Service) Update(ctx context.Context, userID string, tagType *TagType) error {
	if _, err := service.Get(ctx, userID, tagType.ID); err != nil {
		return err
	}

	if err := validateTagType(tagType); err != nil {
		return err
	}

	tagType.UserID = userID
	if err := service.repo.Update(ctx, tagType); err != nil {
		return err
	}

	service.logger.Info("tag_type_updated", slog.String("tag_type_id", tagType.ID), slog.String("user_id", userID))
	return nil
}

func (service *Service) Delete(ctx context.Context, userID, id string) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	if err := service.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	service.logger.Info("tag_type_deleted", slog.String("tag_type_id", id), slog.String("user_id", userID))
	return nil
}

func validateTagType(tagType *TagType) error {
	v := &validate.Validator{}
	v.Required(FieldName, tagType.Name).MaxLen(FieldName, tagType.Name, NameMaxLength)
	return v.Err()
}
