package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository level errors. Services translate them into apperrors.
var (
	ErrNotFound            = errors.New("record not found")
	ErrNoRowsAffected      = errors.New("no rows affected")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrDuplicateCourseCode = errors.New("course code already exists in program")
	ErrReferenceCodeTaken  = errors.New("reference code already taken")
	ErrProfileExists       = errors.New("applicant profile already exists")
	ErrReferencedRow       = errors.New("row is still referenced")
	ErrMissingReference    = errors.New("referenced row does not exist")
)

// psql is the shared statement builder using $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository             *UserRepository
	ProgramRepository          *ProgramRepository
	CourseRepository           *CourseRepository
	CoordinatorRepository      *CoordinatorRepository
	ApplicantProfileRepository *ApplicantProfileRepository
	ApplicationRepository      *ApplicationRepository
	AdminApplicationRepository *AdminApplicationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:             NewUserRepository(db),
		ProgramRepository:          NewProgramRepository(db),
		CourseRepository:           NewCourseRepository(db),
		CoordinatorRepository:      NewCoordinatorRepository(db),
		ApplicantProfileRepository: NewApplicantProfileRepository(db),
		ApplicationRepository:      NewApplicationRepository(db),
		AdminApplicationRepository: NewAdminApplicationRepository(db),
	}
}
