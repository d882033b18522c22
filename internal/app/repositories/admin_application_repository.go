package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/helpers"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// AdminApplicationRepository backs the dean inbox and the review transition
type AdminApplicationRepository struct {
	db *pgxpool.Pool
}

// NewAdminApplicationRepository creates a new admin application repository
func NewAdminApplicationRepository(db *pgxpool.Pool) *AdminApplicationRepository {
	return &AdminApplicationRepository{db: db}
}

// inboxFrom joins every table the inbox filters can touch. Both the count and
// the page query use it so their row sets are identical.
func inboxFrom(sb squirrel.SelectBuilder) squirrel.SelectBuilder {
	return sb.From("applications a").
		Join("programs p ON p.id = a.program_id").
		Join("applicant_profiles ap ON ap.id = a.applicant_id")
}

func inboxWhere(filter models.AdminApplicationFilter) squirrel.And {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.ProgramID != nil {
		where = append(where, squirrel.Eq{"a.program_id": *filter.ProgramID})
	}
	if filter.Search != nil {
		term := helpers.LikePattern(*filter.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"ap.first_name": term},
			squirrel.ILike{"ap.last_name": term},
			squirrel.ILike{"p.name": term},
		})
	}
	return where
}

// List returns one page of the inbox and the number of applications matching
// the same filter set.
func (r *AdminApplicationRepository) List(ctx context.Context, filter models.AdminApplicationFilter, page, limit int) ([]models.AdminApplicationListItem, int64, error) {
	where := inboxWhere(filter)

	countSQL, countArgs, err := inboxFrom(psql.Select("COUNT(*)")).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count inbox query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count inbox query")
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}
	if total == 0 {
		return []models.AdminApplicationListItem{}, 0, nil
	}

	direction := "DESC"
	if filter.Sort == models.SortCreatedAtAsc {
		direction = "ASC"
	}

	offset, size := helpers.CalculateOffsetLimit(page, limit)
	query, args, err := inboxFrom(psql.Select(
		"a.id", "a.status", "a.created_at", "a.reviewed_at", "a.reviewed_by",
		"p.id", "p.name", "p.level",
		"ap.id", "ap.first_name", "ap.last_name", "ap.reference_code",
	)).
		Where(where).
		OrderBy("a.created_at "+direction, "a.id "+direction).
		Limit(size).Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list inbox query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query inbox: %w", err)
	}
	defer rows.Close()

	items := make([]models.AdminApplicationListItem, 0, size)
	for rows.Next() {
		var it models.AdminApplicationListItem
		if err := rows.Scan(
			&it.ID, &it.Status, &it.CreatedAt, &it.ReviewedAt, &it.ReviewedBy,
			&it.Program.ID, &it.Program.Name, &it.Program.Level,
			&it.Applicant.ID, &it.Applicant.FirstName, &it.Applicant.LastName, &it.Applicant.ReferenceCode,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan inbox row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating inbox rows: %w", err)
	}
	return items, total, nil
}

// GetDetail returns an application with its program summary and the full
// applicant profile
func (r *AdminApplicationRepository) GetDetail(ctx context.Context, id int64) (*models.AdminApplicationDetail, error) {
	cols := append([]string{
		"a.id", "a.status", "a.created_at", "a.reviewed_at", "a.reviewed_by",
		"p.id", "p.name", "p.level",
	}, prefixColumns("ap", profileColumns)...)

	query, args, err := inboxFrom(psql.Select(cols...)).Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build application detail query: %w", err)
	}

	var d models.AdminApplicationDetail
	dest := append([]any{
		&d.ID, &d.Status, &d.CreatedAt, &d.ReviewedAt, &d.ReviewedBy,
		&d.Program.ID, &d.Program.Name, &d.Program.Level,
	}, profileDest(&d.ApplicantProfile)...)

	if err := r.db.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving application detail: %w", err)
	}
	return &d, nil
}

// FindStatusForUpdate locks the application row and returns its current status
func (r *AdminApplicationRepository) FindStatusForUpdate(ctx context.Context, q db.DBTX, id int64) (models.ApplicationStatus, error) {
	var status models.ApplicationStatus
	err := q.QueryRow(ctx, `SELECT status FROM applications WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("error locking application: %w", err)
	}
	return status, nil
}

// MarkReviewed moves a submitted application to status and stamps the
// reviewer. The update only matches rows still in submitted state; when none
// match it returns ErrNoRowsAffected.
func (r *AdminApplicationRepository) MarkReviewed(ctx context.Context, q db.DBTX, id int64, status models.ApplicationStatus, reviewerID int64) (*models.ApplicationReview, error) {
	var rev models.ApplicationReview
	err := q.QueryRow(ctx, `
		UPDATE applications
		SET status = $1, reviewed_by = $2, reviewed_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING id, status, reviewed_by, reviewed_at`,
		status, reviewerID, id, models.StatusSubmitted,
	).Scan(&rev.ID, &rev.Status, &rev.ReviewedBy, &rev.ReviewedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRowsAffected
		}
		return nil, fmt.Errorf("error reviewing application: %w", err)
	}
	return &rev, nil
}
