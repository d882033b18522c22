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
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// CourseService manages the courses of a program
type CourseService struct {
	tx       Transactor
	courses  CourseStore
	programs ProgramStore
	authz    *appauth.AuthorizationService
	logger   zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(tx Transactor, courses CourseStore, programs ProgramStore, authz *appauth.AuthorizationService, logger zerolog.Logger) *CourseService {
	return &CourseService{
		tx:       tx,
		courses:  courses,
		programs: programs,
		authz:    authz,
		logger:   logger,
	}
}

func normalizeCourseInput(in models.CourseInput) models.CourseInput {
	in.CourseName = strings.TrimSpace(in.CourseName)
	in.CourseCode = strings.ToUpper(strings.TrimSpace(in.CourseCode))
	in.CourseDescription = strings.TrimSpace(in.CourseDescription)
	if in.ECTS <= 0 {
		in.ECTS = models.DefaultECTS
	}
	return in
}

// lockOwnedProgram share-locks the program for the rest of tx, so its
// duration cannot change under a course write, and checks actor owns it.
func (s *CourseService) lockOwnedProgram(ctx context.Context, q db.DBTX, actor appauth.Actor, programID int64) (*models.Program, error) {
	program, err := s.programs.FindForShare(ctx, q, programID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}
	if err := s.authz.ValidateOwnership(actor, program); err != nil {
		return nil, err
	}
	return program, nil
}

func validateYearNumber(program *models.Program, year int) error {
	if year < 1 || year > program.DurationYears {
		return apperrors.ErrInvalidYearNumber.WithDetails(map[string]interface{}{
			"year_number":    year,
			"duration_years": program.DurationYears,
		})
	}
	return nil
}

// CreateCourse adds a course to a program the actor owns
func (s *CourseService) CreateCourse(ctx context.Context, actor appauth.Actor, programID int64, in models.CourseInput) (*models.Course, error) {
	in = normalizeCourseInput(in)

	var course *models.Course
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		program, err := s.lockOwnedProgram(ctx, tx, actor, programID)
		if err != nil {
			return err
		}
		if err := validateYearNumber(program, in.YearNumber); err != nil {
			return err
		}

		course, err = s.courses.Create(ctx, tx, programID, actor.ActorID(), in)
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicateCourseCode) {
				return apperrors.ErrCourseCodeExists
			}
			return fmt.Errorf("error creating course: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("programID", programID).Str("code", course.CourseCode).Msg("Course created")
	return course, nil
}

// ListCoursesForProgram returns every course of a program
func (s *CourseService) ListCoursesForProgram(ctx context.Context, programID int64, filter models.CourseFilter) (*dto.CourseListResponse, error) {
	if _, err := s.programs.GetByID(ctx, programID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	if filter.Sort == "" {
		filter.Sort = models.CourseSortYear
	}
	courses, err := s.courses.ListByProgram(ctx, programID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return &dto.CourseListResponse{ProgramID: programID, Items: courses}, nil
}

// GetCourseByID returns a single course
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// UpdateCourse replaces the writable fields of a course. The actor must own
// the parent program and the year must fit its current duration.
func (s *CourseService) UpdateCourse(ctx context.Context, actor appauth.Actor, id int64, in models.CourseInput) (*models.Course, error) {
	existing, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in = normalizeCourseInput(in)

	var course *models.Course
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		program, err := s.lockOwnedProgram(ctx, tx, actor, existing.ProgramID)
		if err != nil {
			return err
		}
		if err := validateYearNumber(program, in.YearNumber); err != nil {
			return err
		}

		course, err = s.courses.Update(ctx, tx, id, in)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrNotFound):
				return apperrors.ErrCourseNotFound
			case errors.Is(err, repositories.ErrDuplicateCourseCode):
				return apperrors.ErrCourseCodeExists
			}
			return fmt.Errorf("error updating course: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course from a program the actor owns
func (s *CourseService) DeleteCourse(ctx context.Context, actor appauth.Actor, id int64) error {
	course, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return err
	}

	program, err := s.programs.GetByID(ctx, course.ProgramID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error retrieving program: %w", err)
	}
	if err := s.authz.ValidateOwnership(actor, program); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}
