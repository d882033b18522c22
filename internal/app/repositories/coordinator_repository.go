package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/dberrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

// CoordinatorRepository handles database operations for program coordinators
type CoordinatorRepository struct {
	db *pgxpool.Pool
}

// NewCoordinatorRepository creates a new coordinator repository
func NewCoordinatorRepository(db *pgxpool.Pool) *CoordinatorRepository {
	return &CoordinatorRepository{db: db}
}

var coordinatorColumns = []string{
	"id", "full_name", "email", "picture", "telephone_number", "nationality",
	"academic_qualification", "speciality", "office_location", "office_hours", "created_at",
}

func scanCoordinator(row pgx.Row) (*models.ProgramCoordinator, error) {
	var c models.ProgramCoordinator
	err := row.Scan(
		&c.ID, &c.FullName, &c.Email, &c.Picture, &c.TelephoneNumber, &c.Nationality,
		&c.AcademicQualification, &c.Speciality, &c.OfficeLocation, &c.OfficeHours, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func coordinatorValues(in models.CoordinatorInput) map[string]interface{} {
	return map[string]interface{}{
		"full_name":              in.FullName,
		"email":                  in.Email,
		"picture":                in.Picture,
		"telephone_number":       in.TelephoneNumber,
		"nationality":            in.Nationality,
		"academic_qualification": in.AcademicQualification,
		"speciality":             in.Speciality,
		"office_location":        in.OfficeLocation,
		"office_hours":           in.OfficeHours,
	}
}

// Create inserts a coordinator. A duplicate email yields ErrDuplicateEmail.
func (r *CoordinatorRepository) Create(ctx context.Context, in models.CoordinatorInput) (*models.ProgramCoordinator, error) {
	query, args, err := psql.Insert("program_coordinators").SetMap(coordinatorValues(in)).
		Suffix("RETURNING " + joinColumns(coordinatorColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create coordinator query: %w", err)
	}

	c, err := scanCoordinator(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCoordinatorsEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating coordinator: %w", err)
	}
	return c, nil
}

// GetByID retrieves a coordinator by ID
func (r *CoordinatorRepository) GetByID(ctx context.Context, id int64) (*models.ProgramCoordinator, error) {
	query, args, err := psql.Select(coordinatorColumns...).From("program_coordinators").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get coordinator query: %w", err)
	}

	c, err := scanCoordinator(r.db.QueryRow(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("error retrieving coordinator: %w", err)
	}
	return c, err
}

// List returns one page of coordinators ordered by full name, plus the total count
func (r *CoordinatorRepository) List(ctx context.Context, page, limit int) ([]models.ProgramCoordinator, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM program_coordinators`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count coordinators: %w", err)
	}
	if total == 0 {
		return []models.ProgramCoordinator{}, 0, nil
	}

	offset, size := helpers.CalculateOffsetLimit(page, limit)
	query, args, err := psql.Select(coordinatorColumns...).From("program_coordinators").
		OrderBy("full_name ASC", "id ASC").
		Limit(size).Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list coordinators query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query coordinators: %w", err)
	}
	defer rows.Close()

	coordinators := make([]models.ProgramCoordinator, 0, size)
	for rows.Next() {
		c, err := scanCoordinator(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan coordinator row: %w", err)
		}
		coordinators = append(coordinators, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating coordinator rows: %w", err)
	}
	return coordinators, total, nil
}

// Update overwrites a coordinator
func (r *CoordinatorRepository) Update(ctx context.Context, id int64, in models.CoordinatorInput) (*models.ProgramCoordinator, error) {
	query, args, err := psql.Update("program_coordinators").SetMap(coordinatorValues(in)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(coordinatorColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update coordinator query: %w", err)
	}

	c, err := scanCoordinator(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrNotFound
		case dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCoordinatorsEmail):
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error updating coordinator: %w", err)
	}
	return c, nil
}

// Delete removes a coordinator. Programs referencing it are unassigned by
// the ON DELETE SET NULL foreign key.
func (r *CoordinatorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM program_coordinators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting coordinator: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
