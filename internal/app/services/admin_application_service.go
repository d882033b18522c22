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

// AdminApplicationService backs the dean inbox and the review transition
type AdminApplicationService struct {
	tx           Transactor
	applications AdminApplicationStore
	logger       zerolog.Logger
}

// NewAdminApplicationService creates a new AdminApplicationService
func NewAdminApplicationService(tx Transactor, applications AdminApplicationStore, logger zerolog.Logger) *AdminApplicationService {
	return &AdminApplicationService{
		tx:           tx,
		applications: applications,
		logger:       logger,
	}
}

// ListApplications pages the inbox. All filters combine with AND and the
// total is counted under the same conditions as the page.
func (s *AdminApplicationService) ListApplications(ctx context.Context, filter models.AdminApplicationFilter, page, limit int) (dto.PageResponse[models.AdminApplicationListItem], error) {
	page, limit = helpers.NormalizePage(page, limit)
	if filter.Sort == "" {
		filter.Sort = models.SortCreatedAtDesc
	}

	items, total, err := s.applications.List(ctx, filter, page, limit)
	if err != nil {
		return dto.PageResponse[models.AdminApplicationListItem]{}, fmt.Errorf("error listing applications: %w", err)
	}
	return dto.NewPageResponse(items, page, limit, total), nil
}

// GetApplication returns the full application with its applicant profile
func (s *AdminApplicationService) GetApplication(ctx context.Context, id int64) (*models.AdminApplicationDetail, error) {
	detail, err := s.applications.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return detail, nil
}

// ReviewApplication moves a submitted application to target. The row is
// locked for the check and the write is conditional on the status still
// being submitted, so of two racing reviewers exactly one succeeds.
func (s *AdminApplicationService) ReviewApplication(ctx context.Context, id, reviewerID int64, target models.ApplicationStatus) (*models.ApplicationReview, error) {
	if !target.IsFinal() {
		return nil, apperrors.ErrInvalidReviewStatus
	}

	var review *models.ApplicationReview
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		current, err := s.applications.FindStatusForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrApplicationNotFound
			}
			return fmt.Errorf("error locking application: %w", err)
		}

		if !current.CanTransitionTo(target) {
			return apperrors.ErrApplicationAlreadyReviewed.WithDetails(map[string]interface{}{
				"current_status": current,
			})
		}

		review, err = s.applications.MarkReviewed(ctx, tx, id, target, reviewerID)
		if err != nil {
			if errors.Is(err, repositories.ErrNoRowsAffected) {
				s.logger.Error().Int64("applicationID", id).Msg("Review update matched no rows after status check")
				return apperrors.ErrApplicationReviewFailed
			}
			return fmt.Errorf("error reviewing application: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", id).
		Int64("reviewerID", reviewerID).
		Str("status", string(target)).
		Msg("Application reviewed")
	return review, nil
}

// AcceptApplication reviews the application as accepted
func (s *AdminApplicationService) AcceptApplication(ctx context.Context, id, reviewerID int64) (*models.ApplicationReview, error) {
	return s.ReviewApplication(ctx, id, reviewerID, models.StatusAccepted)
}

// RejectApplication reviews the application as rejected
func (s *AdminApplicationService) RejectApplication(ctx context.Context, id, reviewerID int64) (*models.ApplicationReview, error) {
	return s.ReviewApplication(ctx, id, reviewerID, models.StatusRejected)
}
