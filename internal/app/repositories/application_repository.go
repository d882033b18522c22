package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/dberrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

// ApplicationRepository handles an applicant's own applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a submitted application and fills in the generated fields
func (r *ApplicationRepository) Create(ctx context.Context, q db.DBTX, app *models.Application) error {
	err := q.QueryRow(ctx, `
		INSERT INTO applications (applicant_id, program_id, created_by, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, reviewed_by, reviewed_at, created_at`,
		app.ApplicantID, app.ProgramID, app.CreatedBy, models.StatusSubmitted,
	).Scan(&app.ID, &app.Status, &app.ReviewedBy, &app.ReviewedAt, &app.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return ErrMissingReference
		}
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// ListByApplicant returns one page of an applicant's applications, newest
// first, and the applicant's total application count.
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID int64, page, limit int) ([]models.ApplicationListItem, int64, error) {
	where := squirrel.Eq{"a.applicant_id": applicantID}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("applications a").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}
	if total == 0 {
		return []models.ApplicationListItem{}, 0, nil
	}

	offset, size := helpers.CalculateOffsetLimit(page, limit)
	query, args, err := psql.
		Select("a.id", "a.program_id", "a.status", "a.created_at", "p.id", "p.name", "p.level").
		From("applications a").
		Join("programs p ON p.id = a.program_id").
		Where(where).
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(size).Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	items := make([]models.ApplicationListItem, 0, size)
	for rows.Next() {
		var it models.ApplicationListItem
		if err := rows.Scan(&it.ID, &it.ProgramID, &it.Status, &it.CreatedAt,
			&it.Program.ID, &it.Program.Name, &it.Program.Level); err != nil {
			return nil, 0, fmt.Errorf("failed to scan application row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}
	return items, total, nil
}
