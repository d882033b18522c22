package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

// ApplicationService handles applicant side application submission
type ApplicationService struct {
	tx           Transactor
	programs     ProgramStore
	profiles     ApplicantProfileStore
	applications ApplicationStore
	writer       *profileWriter
	logger       zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	tx Transactor,
	programs ProgramStore,
	profiles ApplicantProfileStore,
	applications ApplicationStore,
	newCode helpers.ReferenceCodeGenerator,
	logger zerolog.Logger,
) *ApplicationService {
	if newCode == nil {
		newCode = helpers.NewReferenceCode
	}
	return &ApplicationService{
		tx:           tx,
		programs:     programs,
		profiles:     profiles,
		applications: applications,
		writer:       &profileWriter{profiles: profiles, newCode: newCode, logger: logger},
		logger:       logger,
	}
}

// SubmitApplication stores the caller's profile and files a new application
// to programID in one transaction. Nothing is written if any step fails.
func (s *ApplicationService) SubmitApplication(ctx context.Context, userID, programID int64, in models.ApplicantProfileInput) (*dto.SubmitApplicationResponse, error) {
	if _, err := s.programs.GetByID(ctx, programID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	in = normalizeProfileInput(in)

	var (
		profile     *models.ApplicantProfile
		application *models.Application
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		profile, err = s.writer.upsert(ctx, tx, userID, in)
		if err != nil {
			return err
		}

		application = &models.Application{
			ApplicantID: profile.ID,
			ProgramID:   programID,
			CreatedBy:   userID,
			Status:      models.StatusSubmitted,
		}
		if err := s.applications.Create(ctx, tx, application); err != nil {
			if errors.Is(err, repositories.ErrMissingReference) {
				// program deleted after the existence check
				return apperrors.ErrProgramNotFound
			}
			s.logger.Error().Err(err).Int64("userID", userID).Int64("programID", programID).Msg("Error creating application")
			return apperrors.ErrApplicationCreateFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", application.ID).
		Int64("programID", programID).
		Str("referenceCode", profile.ReferenceCode).
		Msg("Application submitted")

	return &dto.SubmitApplicationResponse{Application: application, Profile: profile}, nil
}

// ListMyApplications pages the caller's applications, newest first. The
// caller must already have a profile.
func (s *ApplicationService) ListMyApplications(ctx context.Context, userID int64, page, limit int) (dto.PageResponse[models.ApplicationListItem], error) {
	page, limit = helpers.NormalizePage(page, limit)

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return dto.PageResponse[models.ApplicationListItem]{}, apperrors.ErrProfileNotFound
		}
		return dto.PageResponse[models.ApplicationListItem]{}, fmt.Errorf("error retrieving applicant profile: %w", err)
	}

	items, total, err := s.applications.ListByApplicant(ctx, profile.ID, page, limit)
	if err != nil {
		return dto.PageResponse[models.ApplicationListItem]{}, fmt.Errorf("error listing applications: %w", err)
	}
	return dto.NewPageResponse(items, page, limit, total), nil
}
