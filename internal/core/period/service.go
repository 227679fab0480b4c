// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package period

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/internal/platform/validate"
	"github.com/taibuivan/ibis/pkg/uuid"
)

// Service orchestrates business rules for periods.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new period [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns a page of the user's periods.
func (service *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Period, int, error) {
	return service.repo.List(ctx, userID, limit, offset)
}

// Get returns one of the user's periods.
func (service *Service) Get(ctx context.Context, userID, id string) (*Period, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}
	return service.repo.FindByID(ctx, userID, id)
}

/*
Create validates and stores a new period for userID.

Parameters:
  - ctx: context.Context
  - userID: string (owner, taken from the access token)
  - period: *Period (ID and owner are assigned here)

Returns:
  - error: VALIDATION_ERROR when start is after end
*/
func (service *Service) Create(ctx context.Context, userID string, period *Period) error {
	if err := validatePeriod(period); err != nil {
		return err
	}

	period.ID = uuid.New()
	period.UserID = userID

	if err := service.repo.Create(ctx, period); err != nil {
		return err
	}

	service.logger.Info("period_created", slog.String("period_id", period.ID), slog.String("user_id", userID))
	return nil
}

// Update replaces both bounds of an existing period.
func (service *Service) Update(ctx context.Context, userID string, period *Period) error {
	if _, err := service.Get(ctx, userID, period.ID); err != nil {
		return err
	}

	if err := validatePeriod(period); err != nil {
		return err
	}

	period.UserID = userID
	if err := service.repo.Update(ctx, period); err != nil {
		return err
	}

	service.logger.Info("period_updated", slog.String("period_id", period.ID), slog.String("user_id", userID))
	return nil
}

// Delete removes a period; facts that used it keep existing without one.
func (service *Service) Delete(ctx context.Context, userID, id string) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	if err := service.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	service.logger.Info("period_deleted", slog.String("period_id", id), slog.String("user_id", userID))
	return nil
}

// validatePeriod rejects a start bound later than the end bound.
func validatePeriod(period *Period) error {
	v := &validate.Validator{}
	v.Custom(validate.NonFieldErrors,
		period.Start != nil && period.End != nil && period.Start.After(*period.End),
		"The period start must not be later than the period end.",
	)
	return v.Err()
}
