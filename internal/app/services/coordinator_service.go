package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

// CoordinatorService manages program coordinators
type CoordinatorService struct {
	coordinators CoordinatorStore
	logger       zerolog.Logger
}

// NewCoordinatorService creates a new CoordinatorService
func NewCoordinatorService(coordinators CoordinatorStore, logger zerolog.Logger) *CoordinatorService {
	return &CoordinatorService{coordinators: coordinators, logger: logger}
}

func normalizeCoordinatorInput(in models.CoordinatorInput) models.CoordinatorInput {
	return models.CoordinatorInput{
		FullName:              strings.TrimSpace(in.FullName),
		Email:                 normalizeEmail(in.Email),
		Picture:               helpers.NullIfBlank(in.Picture),
		TelephoneNumber:       helpers.NullIfBlank(in.TelephoneNumber),
		Nationality:           helpers.NullIfBlank(in.Nationality),
		AcademicQualification: helpers.NullIfBlank(in.AcademicQualification),
		Speciality:            helpers.NullIfBlank(in.Speciality),
		OfficeLocation:        helpers.NullIfBlank(in.OfficeLocation),
		OfficeHours:           helpers.NullIfBlank(in.OfficeHours),
	}
}

// CreateCoordinator creates a coordinator with a unique email
func (s *CoordinatorService) CreateCoordinator(ctx context.Context, in models.CoordinatorInput) (*models.ProgramCoordinator, error) {
	coordinator, err := s.coordinators.Create(ctx, normalizeCoordinatorInput(in))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, apperrors.ErrCoordinatorEmailExists
		}
		return nil, fmt.Errorf("error creating coordinator: %w", err)
	}
	s.logger.Info().Int64("coordinatorID", coordinator.ID).Msg("Coordinator created")
	return coordinator, nil
}

// GetCoordinatorByID returns a single coordinator
func (s *CoordinatorService) GetCoordinatorByID(ctx context.Context, id int64) (*models.ProgramCoordinator, error) {
	coordinator, err := s.coordinators.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCoordinatorNotFound
		}
		return nil, fmt.Errorf("error retrieving coordinator: %w", err)
	}
	return coordinator, nil
}

// ListCoordinators pages coordinators ordered by name
func (s *CoordinatorService) ListCoordinators(ctx context.Context, page, limit int) (dto.PageResponse[models.ProgramCoordinator], error) {
	page, limit = helpers.NormalizePage(page, limit)

	items, total, err := s.coordinators.List(ctx, page, limit)
	if err != nil {
		return dto.PageResponse[models.ProgramCoordinator]{}, fmt.Errorf("error listing coordinators: %w", err)
	}
	return dto.NewPageResponse(items, page, limit, total), nil
}

// UpdateCoordinator replaces a coordinator's fields
func (s *CoordinatorService) UpdateCoordinator(ctx context.Context, id int64, in models.CoordinatorInput) (*models.ProgramCoordinator, error) {
	coordinator, err := s.coordinators.Update(ctx, id, normalizeCoordinatorInput(in))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.ErrCoordinatorNotFound
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, apperrors.ErrCoordinatorEmailExists
		}
		return nil, fmt.Errorf("error updating coordinator: %w", err)
	}
	return coordinator, nil
}

// DeleteCoordinator deletes a coordinator. Programs pointing at it are unassigned.
func (s *CoordinatorService) DeleteCoordinator(ctx context.Context, id int64) error {
	if err := s.coordinators.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCoordinatorNotFound
		}
		return fmt.Errorf("error deleting coordinator: %w", err)
	}
	s.logger.Info().Int64("coordinatorID", id).Msg("Coordinator deleted")
	return nil
}
