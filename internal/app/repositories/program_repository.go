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
	"github.com/yigit/admissions/internal/pkg/dberrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// ProgramRepository handles database operations for programs
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{db: db}
}

var programColumns = []string{
	"id", "created_by", "program_coordinator_id", "name", "level", "duration_years",
	"short_description", "about_text", "entry_requirements_text", "scholarships_text", "created_at",
}

func scanProgram(row pgx.Row) (*models.Program, error) {
	var p models.Program
	err := row.Scan(
		&p.ID, &p.CreatedBy, &p.ProgramCoordinatorID, &p.Name, &p.Level, &p.DurationYears,
		&p.ShortDescription, &p.AboutText, &p.EntryRequirementsText, &p.ScholarshipsText, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a program owned by createdBy
func (r *ProgramRepository) Create(ctx context.Context, createdBy int64, in models.ProgramInput) (*models.Program, error) {
	query, args, err := psql.Insert("programs").
		Columns("created_by", "name", "level", "duration_years", "short_description",
			"about_text", "entry_requirements_text", "scholarships_text").
		Values(createdBy, in.Name, in.Level, in.DurationYears, in.ShortDescription,
			in.AboutText, in.EntryRequirementsText, in.ScholarshipsText).
		Suffix("RETURNING " + joinColumns(programColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create program query: %w", err)
	}

	p, err := scanProgram(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("error creating program: %w", err)
	}
	return p, nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	return r.get(ctx, r.db, id, "")
}

// FindForShare reads a program inside a transaction and holds a share lock on
// it, so its duration cannot change until the transaction ends.
func (r *ProgramRepository) FindForShare(ctx context.Context, q db.DBTX, id int64) (*models.Program, error) {
	return r.get(ctx, q, id, "FOR SHARE")
}

// FindForUpdate reads a program inside a transaction and locks it against
// concurrent writers and share-lockers.
func (r *ProgramRepository) FindForUpdate(ctx context.Context, q db.DBTX, id int64) (*models.Program, error) {
	return r.get(ctx, q, id, "FOR UPDATE")
}

func (r *ProgramRepository) get(ctx context.Context, q db.DBTX, id int64, lock string) (*models.Program, error) {
	sb := psql.Select(programColumns...).From("programs").Where(squirrel.Eq{"id": id})
	if lock != "" {
		sb = sb.Suffix(lock)
	}
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	p, err := scanProgram(q.QueryRow(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}
	return p, err
}

// List returns one page of programs ordered by name and the total number of
// programs matching the same filter.
func (r *ProgramRepository) List(ctx context.Context, filter models.ProgramFilter, page, limit int) ([]models.Program, int64, error) {
	where := squirrel.And{}
	if filter.Level != nil {
		where = append(where, squirrel.Eq{"level": *filter.Level})
	}
	if filter.Search != nil {
		where = append(where, squirrel.ILike{"name": helpers.LikePattern(*filter.Search)})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("programs").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count programs query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count programs query")
		return nil, 0, fmt.Errorf("failed to count programs: %w", err)
	}
	if total == 0 {
		return []models.Program{}, 0, nil
	}

	offset, size := helpers.CalculateOffsetLimit(page, limit)
	query, args, err := psql.Select(programColumns...).From("programs").Where(where).
		OrderBy("name ASC", "id ASC").
		Limit(size).Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	programs := make([]models.Program, 0, size)
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan program row: %w", err)
		}
		programs = append(programs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating program rows: %w", err)
	}

	return programs, total, nil
}

// Update overwrites the writable fields of a program
func (r *ProgramRepository) Update(ctx context.Context, q db.DBTX, id int64, in models.ProgramInput) (*models.Program, error) {
	query, args, err := psql.Update("programs").
		SetMap(map[string]interface{}{
			"name":                    in.Name,
			"level":                   in.Level,
			"duration_years":          in.DurationYears,
			"short_description":       in.ShortDescription,
			"about_text":              in.AboutText,
			"entry_requirements_text": in.EntryRequirementsText,
			"scholarships_text":       in.ScholarshipsText,
		}).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(programColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update program query: %w", err)
	}

	p, err := scanProgram(q.QueryRow(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("error updating program: %w", err)
	}
	return p, err
}

// SetCoordinator assigns coordinatorID to the program, or clears it when nil
func (r *ProgramRepository) SetCoordinator(ctx context.Context, id int64, coordinatorID *int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE programs SET program_coordinator_id = $1 WHERE id = $2`, coordinatorID, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return ErrMissingReference
		}
		return fmt.Errorf("error assigning coordinator: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a program and, by cascade, its courses. Programs that still
// have applications cannot be deleted.
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return ErrReferencedRow
		}
		return fmt.Errorf("error deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
