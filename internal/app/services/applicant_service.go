package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

const maxReferenceCodeAttempts = 3

// profileWriter creates or updates an applicant's profile inside a caller
// owned transaction. Both the profile endpoint and application submission go
// through it so a user can never end up with two profiles.
type profileWriter struct {
	profiles ApplicantProfileStore
	newCode  helpers.ReferenceCodeGenerator
	logger   zerolog.Logger
}

func (w *profileWriter) upsert(ctx context.Context, q db.DBTX, userID int64, in models.ApplicantProfileInput) (*models.ApplicantProfile, error) {
	_, err := w.profiles.FindByUserID(ctx, q, userID, true)
	switch {
	case err == nil:
		if err := w.profiles.UpdateByUserID(ctx, q, userID, in); err != nil {
			return nil, fmt.Errorf("error updating applicant profile: %w", err)
		}
	case errors.Is(err, repositories.ErrNotFound):
		if err := w.insert(ctx, q, userID, in); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("error locking applicant profile: %w", err)
	}

	profile, err := w.profiles.FindByUserID(ctx, q, userID, false)
	if err != nil {
		return nil, fmt.Errorf("error reading applicant profile: %w", err)
	}
	return profile, nil
}

func (w *profileWriter) insert(ctx context.Context, q db.DBTX, userID int64, in models.ApplicantProfileInput) error {
	for attempt := 1; attempt <= maxReferenceCodeAttempts; attempt++ {
		err := w.profiles.Insert(ctx, q, userID, w.newCode(), in)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repositories.ErrReferenceCodeTaken):
			w.logger.Warn().Int64("userID", userID).Int("attempt", attempt).Msg("Reference code collision, regenerating")
			continue
		case errors.Is(err, repositories.ErrProfileExists):
			// a concurrent request created the profile first
			if _, err := w.profiles.FindByUserID(ctx, q, userID, true); err != nil {
				return fmt.Errorf("error locking applicant profile: %w", err)
			}
			if err := w.profiles.UpdateByUserID(ctx, q, userID, in); err != nil {
				return fmt.Errorf("error updating applicant profile: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("error creating applicant profile: %w", err)
		}
	}
	return apperrors.ErrReferenceCodeConflict
}

func normalizeProfileInput(in models.ApplicantProfileInput) models.ApplicantProfileInput {
	return models.ApplicantProfileInput{
		FirstName:            strings.TrimSpace(in.FirstName),
		LastName:             strings.TrimSpace(in.LastName),
		DateOfBirth:          strings.TrimSpace(in.DateOfBirth),
		Gender:               strings.TrimSpace(in.Gender),
		PassportNo:           strings.TrimSpace(in.PassportNo),
		IDNo:                 strings.TrimSpace(in.IDNo),
		PlaceOfBirth:         strings.TrimSpace(in.PlaceOfBirth),
		ContactNumber:        strings.TrimSpace(in.ContactNumber),
		Country:              strings.TrimSpace(in.Country),
		AddressLine:          strings.TrimSpace(in.AddressLine),
		City:                 strings.TrimSpace(in.City),
		State:                strings.TrimSpace(in.State),
		ZipPostcode:          strings.TrimSpace(in.ZipPostcode),
		MotherFullName:       strings.TrimSpace(in.MotherFullName),
		FatherFullName:       strings.TrimSpace(in.FatherFullName),
		HeardAboutUniversity: strings.TrimSpace(in.HeardAboutUniversity),
	}
}

// ApplicantService manages the caller's own applicant profile
type ApplicantService struct {
	tx       Transactor
	profiles ApplicantProfileStore
	writer   *profileWriter
	logger   zerolog.Logger
}

// NewApplicantService creates a new ApplicantService
func NewApplicantService(tx Transactor, profiles ApplicantProfileStore, newCode helpers.ReferenceCodeGenerator, logger zerolog.Logger) *ApplicantService {
	if newCode == nil {
		newCode = helpers.NewReferenceCode
	}
	return &ApplicantService{
		tx:       tx,
		profiles: profiles,
		writer:   &profileWriter{profiles: profiles, newCode: newCode, logger: logger},
		logger:   logger,
	}
}

// GetProfile returns the profile owned by userID
func (s *ApplicantService) GetProfile(ctx context.Context, userID int64) (*models.ApplicantProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving applicant profile: %w", err)
	}
	return profile, nil
}

// UpsertProfile creates the caller's profile or replaces its fields. The
// reference code is assigned on creation and kept on every later update.
func (s *ApplicantService) UpsertProfile(ctx context.Context, userID int64, in models.ApplicantProfileInput) (*models.ApplicantProfile, error) {
	in = normalizeProfileInput(in)

	var profile *models.ApplicantProfile
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		profile, err = s.writer.upsert(ctx, tx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("referenceCode", profile.ReferenceCode).Msg("Applicant profile saved")
	return profile, nil
}
