package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/admissions/internal/app/auth"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

// ProgramService manages degree programs
type ProgramService struct {
	tx           Transactor
	programs     ProgramStore
	courses      CourseStore
	coordinators CoordinatorStore
	authz        *appauth.AuthorizationService
	logger       zerolog.Logger
}

// NewProgramService creates a new ProgramService
func NewProgramService(tx Transactor, programs ProgramStore, courses CourseStore, coordinators CoordinatorStore, authz *appauth.AuthorizationService, logger zerolog.Logger) *ProgramService {
	return &ProgramService{
		tx:           tx,
		programs:     programs,
		courses:      courses,
		coordinators: coordinators,
		authz:        authz,
		logger:       logger,
	}
}

func normalizeProgramInput(in models.ProgramInput) models.ProgramInput {
	in.Name = strings.TrimSpace(in.Name)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.AboutText = strings.TrimSpace(in.AboutText)
	in.EntryRequirementsText = strings.TrimSpace(in.EntryRequirementsText)
	in.ScholarshipsText = strings.TrimSpace(in.ScholarshipsText)
	return in
}

// CreateProgram creates a program owned by actor
func (s *ProgramService) CreateProgram(ctx context.Context, actor appauth.Actor, in models.ProgramInput) (*models.Program, error) {
	if err := s.authz.RequireRole(actor, models.RoleDean); err != nil {
		return nil, err
	}

	program, err := s.programs.Create(ctx, actor.ActorID(), normalizeProgramInput(in))
	if err != nil {
		return nil, fmt.Errorf("error creating program: %w", err)
	}

	s.logger.Info().Int64("programID", program.ID).Int64("createdBy", program.CreatedBy).Msg("Program created")
	return program, nil
}

// ListPrograms pages the public program list ordered by name
func (s *ProgramService) ListPrograms(ctx context.Context, filter models.ProgramFilter, page, limit int) (dto.PageResponse[models.Program], error) {
	page, limit = helpers.NormalizePage(page, limit)

	items, total, err := s.programs.List(ctx, filter, page, limit)
	if err != nil {
		return dto.PageResponse[models.Program]{}, fmt.Errorf("error listing programs: %w", err)
	}
	return dto.NewPageResponse(items, page, limit, total), nil
}

// GetProgramByID returns a single program
func (s *ProgramService) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}
	return program, nil
}

// getOwnedProgram loads a program and checks actor owns it
func (s *ProgramService) getOwnedProgram(ctx context.Context, actor appauth.Actor, id int64) (*models.Program, error) {
	program, err := s.GetProgramByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateOwnership(actor, program); err != nil {
		return nil, err
	}
	return program, nil
}

// UpdateProgram replaces the writable fields of a program the actor owns
//
// The program row is locked for the whole update, so no course can be written
// against the old duration while a shorter one is being checked.
func (s *ProgramService) UpdateProgram(ctx context.Context, actor appauth.Actor, id int64, in models.ProgramInput) (*models.Program, error) {
	in = normalizeProgramInput(in)

	var program *models.Program
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		current, err := s.programs.FindForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrProgramNotFound
			}
			return fmt.Errorf("error retrieving program: %w", err)
		}
		if err := s.authz.ValidateOwnership(actor, current); err != nil {
			return err
		}

		if in.DurationYears < current.DurationYears {
			maxYear, err := s.courses.MaxYearNumber(ctx, tx, id)
			if err != nil {
				return fmt.Errorf("error reading course years: %w", err)
			}
			if in.DurationYears < maxYear {
				return apperrors.ErrInvalidDuration.WithDetails(map[string]interface{}{
					"duration_years":  in.DurationYears,
					"max_course_year": maxYear,
				})
			}
		}

		program, err = s.programs.Update(ctx, tx, id, in)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrProgramNotFound
			}
			return fmt.Errorf("error updating program: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return program, nil
}

// DeleteProgram deletes a program the actor owns together with its courses
func (s *ProgramService) DeleteProgram(ctx context.Context, actor appauth.Actor, id int64) error {
	if _, err := s.getOwnedProgram(ctx, actor, id); err != nil {
		return err
	}

	if err := s.programs.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return apperrors.ErrProgramNotFound
		case errors.Is(err, repositories.ErrReferencedRow):
			return apperrors.ErrProgramHasApplications
		}
		return fmt.Errorf("error deleting program: %w", err)
	}

	s.logger.Info().Int64("programID", id).Msg("Program deleted")
	return nil
}

// AssignCoordinator sets or, with a nil id, clears the program's coordinator
func (s *ProgramService) AssignCoordinator(ctx context.Context, actor appauth.Actor, id int64, coordinatorID *int64) (*dto.AssignCoordinatorResponse, error) {
	if _, err := s.getOwnedProgram(ctx, actor, id); err != nil {
		return nil, err
	}

	if coordinatorID != nil {
		if _, err := s.coordinators.GetByID(ctx, *coordinatorID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperrors.ErrCoordinatorNotFound
			}
			return nil, fmt.Errorf("error retrieving coordinator: %w", err)
		}
	}

	if err := s.programs.SetCoordinator(ctx, id, coordinatorID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.ErrProgramNotFound
		case errors.Is(err, repositories.ErrMissingReference):
			// coordinator deleted between the check and the write
			return nil, apperrors.ErrCoordinatorNotFound
		}
		return nil, fmt.Errorf("error assigning coordinator: %w", err)
	}

	return &dto.AssignCoordinatorResponse{ID: id, ProgramCoordinatorID: coordinatorID}, nil
}
