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
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

var courseColumns = []string{
	"id", "program_id", "created_by", "year_number", "course_name", "course_code",
	"credits::float8", "theoretical_hours", "practical_hours", "distance_hours",
	"ects::float8", "course_description", "created_at",
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.ProgramID, &c.CreatedBy, &c.YearNumber, &c.CourseName, &c.CourseCode,
		&c.Credits, &c.TheoreticalHours, &c.PracticalHours, &c.DistanceHours,
		&c.ECTS, &c.CourseDescription, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func courseValues(in models.CourseInput) map[string]interface{} {
	return map[string]interface{}{
		"year_number":        in.YearNumber,
		"course_name":        in.CourseName,
		"course_code":        in.CourseCode,
		"credits":            in.Credits,
		"theoretical_hours":  in.TheoreticalHours,
		"practical_hours":    in.PracticalHours,
		"distance_hours":     in.DistanceHours,
		"ects":               in.ECTS,
		"course_description": in.CourseDescription,
	}
}

// Create inserts a course into a program. A course code already used in the
// same program yields ErrDuplicateCourseCode.
func (r *CourseRepository) Create(ctx context.Context, q db.DBTX, programID, createdBy int64, in models.CourseInput) (*models.Course, error) {
	values := courseValues(in)
	values["program_id"] = programID
	values["created_by"] = createdBy

	query, args, err := psql.Insert("courses").SetMap(values).
		Suffix("RETURNING " + joinColumns(courseColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create course query: %w", err)
	}

	c, err := scanCourse(q.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCoursesProgramCode) {
			return nil, ErrDuplicateCourseCode
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return c, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query, args, err := psql.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return c, err
}

// ListByProgram returns every course of a program, optionally restricted to
// one year. Default order is year then name; CourseSortName orders by name only.
func (r *CourseRepository) ListByProgram(ctx context.Context, programID int64, filter models.CourseFilter) ([]models.Course, error) {
	sb := psql.Select(courseColumns...).From("courses").Where(squirrel.Eq{"program_id": programID})
	if filter.Year != nil {
		sb = sb.Where(squirrel.Eq{"year_number": *filter.Year})
	}
	if filter.Sort == models.CourseSortName {
		sb = sb.OrderBy("course_name ASC", "id ASC")
	} else {
		sb = sb.OrderBy("year_number ASC", "course_name ASC", "id ASC")
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// MaxYearNumber returns the highest year_number among the program's courses,
// or 0 when it has none.
func (r *CourseRepository) MaxYearNumber(ctx context.Context, q db.DBTX, programID int64) (int, error) {
	query, args, err := psql.Select("COALESCE(MAX(year_number), 0)").
		From("courses").
		Where(squirrel.Eq{"program_id": programID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build max course year query: %w", err)
	}

	var year int
	if err := q.QueryRow(ctx, query, args...).Scan(&year); err != nil {
		return 0, fmt.Errorf("error reading max course year: %w", err)
	}
	return year, nil
}

// Update overwrites the writable fields of a course
func (r *CourseRepository) Update(ctx context.Context, q db.DBTX, id int64, in models.CourseInput) (*models.Course, error) {
	query, args, err := psql.Update("courses").SetMap(courseValues(in)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(courseColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update course query: %w", err)
	}

	c, err := scanCourse(q.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrNotFound
		case dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCoursesProgramCode):
			return nil, ErrDuplicateCourseCode
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return c, nil
}

// Delete removes a course
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
