// Package services holds the admissions business rules. Services depend on the
// store interfaces below; the pgx repositories implement them in production
// and the in-memory stores in tests.
package services

import (
	"context"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
)

// Transactor runs fn inside one database transaction
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// UserStore persists user accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProgramStore persists programs
type ProgramStore interface {
	Create(ctx context.Context, createdBy int64, in models.ProgramInput) (*models.Program, error)
	GetByID(ctx context.Context, id int64) (*models.Program, error)
	FindForShare(ctx context.Context, q db.DBTX, id int64) (*models.Program, error)
	FindForUpdate(ctx context.Context, q db.DBTX, id int64) (*models.Program, error)
	List(ctx context.Context, filter models.ProgramFilter, page, limit int) ([]models.Program, int64, error)
	Update(ctx context.Context, q db.DBTX, id int64, in models.ProgramInput) (*models.Program, error)
	SetCoordinator(ctx context.Context, id int64, coordinatorID *int64) error
	Delete(ctx context.Context, id int64) error
}

// CourseStore persists courses
type CourseStore interface {
	Create(ctx context.Context, q db.DBTX, programID, createdBy int64, in models.CourseInput) (*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListByProgram(ctx context.Context, programID int64, filter models.CourseFilter) ([]models.Course, error)
	MaxYearNumber(ctx context.Context, q db.DBTX, programID int64) (int, error)
	Update(ctx context.Context, q db.DBTX, id int64, in models.CourseInput) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// CoordinatorStore persists program coordinators
type CoordinatorStore interface {
	Create(ctx context.Context, in models.CoordinatorInput) (*models.ProgramCoordinator, error)
	GetByID(ctx context.Context, id int64) (*models.ProgramCoordinator, error)
	List(ctx context.Context, page, limit int) ([]models.ProgramCoordinator, int64, error)
	Update(ctx context.Context, id int64, in models.CoordinatorInput) (*models.ProgramCoordinator, error)
	Delete(ctx context.Context, id int64) error
}

// ApplicantProfileStore persists the one profile each applicant owns
type ApplicantProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.ApplicantProfile, error)
	FindByUserID(ctx context.Context, q db.DBTX, userID int64, forUpdate bool) (*models.ApplicantProfile, error)
	Insert(ctx context.Context, q db.DBTX, userID int64, referenceCode string, in models.ApplicantProfileInput) error
	UpdateByUserID(ctx context.Context, q db.DBTX, userID int64, in models.ApplicantProfileInput) error
}

// ApplicationStore persists applications from the applicant side
type ApplicationStore interface {
	Create(ctx context.Context, q db.DBTX, app *models.Application) error
	ListByApplicant(ctx context.Context, applicantID int64, page, limit int) ([]models.ApplicationListItem, int64, error)
}

// AdminApplicationStore backs the dean inbox and review transition
type AdminApplicationStore interface {
	List(ctx context.Context, filter models.AdminApplicationFilter, page, limit int) ([]models.AdminApplicationListItem, int64, error)
	GetDetail(ctx context.Context, id int64) (*models.AdminApplicationDetail, error)
	FindStatusForUpdate(ctx context.Context, q db.DBTX, id int64) (models.ApplicationStatus, error)
	MarkReviewed(ctx context.Context, q db.DBTX, id int64, status models.ApplicationStatus, reviewerID int64) (*models.ApplicationReview, error)
}
