package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// Default accounts created by CreateDefaultData
const (
	DeanEmail       = "dean@admissions.local"
	ApplicantEmail  = "applicant@admissions.local"
	DefaultPassword = "changeme123"
)

// Services are the services the seeder writes through, so seeded rows obey
// the same rules as API writes
type Services struct {
	Auth        *services.AuthService
	Program     *services.ProgramService
	Course      *services.CourseService
	Coordinator *services.CoordinatorService
}

type seedCourse struct {
	year    int
	code    string
	name    string
	credits float64
	theory  int
	lab     int
}

var computerEngineeringCourses = []seedCourse{
	{1, "CMPE101", "Introduction to Programming", 4, 3, 2},
	{1, "MATH101", "Calculus I", 4, 4, 0},
	{2, "CMPE211", "Data Structures", 4, 3, 2},
	{2, "CMPE223", "Digital Logic Design", 3, 3, 1},
	{3, "CMPE341", "Database Systems", 4, 3, 2},
	{4, "CMPE491", "Senior Design Project", 6, 1, 4},
}

// CreateDefaultData creates a dean, an applicant, a coordinator and one
// program with courses. It does nothing when the dean account already exists.
func CreateDefaultData(ctx context.Context, svc Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")

	dean, err := svc.Auth.Register(ctx, dto.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     DeanEmail,
		Password:  DefaultPassword,
		Role:      models.RoleDean,
	})
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Info().Msg("Default data already present, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error creating dean: %w", err)
	}

	if _, err := svc.Auth.Register(ctx, dto.RegisterRequest{
		FirstName: "Alan",
		LastName:  "Turing",
		Email:     ApplicantEmail,
		Password:  DefaultPassword,
		Role:      models.RoleApplicant,
	}); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return fmt.Errorf("error creating applicant: %w", err)
	}

	office := "Engineering Building, Room 204"
	coordinator, err := svc.Coordinator.CreateCoordinator(ctx, models.CoordinatorInput{
		FullName:       "Grace Hopper",
		Email:          "grace.hopper@admissions.local",
		OfficeLocation: &office,
	})
	if err != nil && !errors.Is(err, apperrors.ErrCoordinatorEmailExists) {
		return fmt.Errorf("error creating coordinator: %w", err)
	}

	identity := identityOf(dean.User)
	program, err := svc.Program.CreateProgram(ctx, identity, models.ProgramInput{
		Name:                  "Computer Engineering",
		Level:                 models.LevelUndergraduate,
		DurationYears:         4,
		ShortDescription:      "Hardware and software foundations of modern computing systems.",
		AboutText:             "A four year program covering programming, algorithms, digital design and systems.",
		EntryRequirementsText: "High school diploma with mathematics and physics.",
		ScholarshipsText:      "Merit scholarships covering up to 50% of tuition are available.",
	})
	if err != nil {
		return fmt.Errorf("error creating program: %w", err)
	}

	if coordinator != nil {
		if _, err := svc.Program.AssignCoordinator(ctx, identity, program.ID, &coordinator.ID); err != nil {
			return fmt.Errorf("error assigning coordinator: %w", err)
		}
	}

	var errs error
	for _, c := range computerEngineeringCourses {
		_, err := svc.Course.CreateCourse(ctx, identity, program.ID, models.CourseInput{
			YearNumber:        c.year,
			CourseName:        c.name,
			CourseCode:        c.code,
			Credits:           c.credits,
			TheoreticalHours:  c.theory,
			PracticalHours:    c.lab,
			CourseDescription: c.name + " for Computer Engineering students.",
		})
		if err != nil {
			lgr.Error().Err(err).Str("code", c.code).Msg("Error creating course")
			errs = errors.Join(errs, err)
		}
	}

	lgr.Info().Int64("programID", program.ID).Msg("Default data created")
	return errs
}
