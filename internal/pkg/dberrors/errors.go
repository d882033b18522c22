package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names created by the migrations in /migrations.
const (
	ConstraintUsersEmail            = "users_email_key"
	ConstraintCoordinatorsEmail     = "program_coordinators_email_key"
	ConstraintCoursesProgramCode    = "courses_program_id_course_code_key"
	ConstraintProfilesUserID        = "applicant_profiles_user_id_key"
	ConstraintProfilesReferenceCode = "applicant_profiles_reference_code_key"

	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == constraintName
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
