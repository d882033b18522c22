package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/yigit/admissions/internal/app/auth"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/repositories/memory"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/auth"
	"github.com/yigit/admissions/internal/pkg/helpers"
	"github.com/yigit/admissions/internal/pkg/tokenstore"
)

type fixture struct {
	db           *memory.DB
	auth         *AuthService
	programs     *ProgramService
	courses      *CourseService
	coordinators *CoordinatorService
	applicant    *ApplicantService
	applications *ApplicationService
	admin        *AdminApplicationService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCodes(t, helpers.NewReferenceCode)
}

func newFixtureWithCodes(t *testing.T, newCode helpers.ReferenceCodeGenerator) *fixture {
	t.Helper()

	mem := memory.New()
	log := zerolog.Nop()
	authz := appauth.NewAuthorizationService()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "service-test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "admissions-test",
	})

	return &fixture{
		db:           mem,
		auth:         NewAuthService(mem.Users(), jwtService, tokenstore.NewMemoryStore(), log).WithHashCost(bcrypt.MinCost),
		programs:     NewProgramService(mem, mem.Programs(), mem.Courses(), mem.Coordinators(), authz, log),
		courses:      NewCourseService(mem, mem.Courses(), mem.Programs(), authz, log),
		coordinators: NewCoordinatorService(mem.Coordinators(), log),
		applicant:    NewApplicantService(mem, mem.Profiles(), newCode, log),
		applications: NewApplicationService(mem, mem.Programs(), mem.Profiles(), mem.Applications(), newCode, log),
		admin:        NewAdminApplicationService(mem, mem.AdminApplications(), log),
	}
}

func (f *fixture) register(t *testing.T, email string, role models.Role) appauth.Identity {
	t.Helper()
	res, err := f.auth.Register(context.Background(), dto.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "secret123",
		Role:      role,
	})
	require.NoError(t, err)
	return appauth.Identity{ID: res.User.ID, Role: res.User.Role}
}

func (f *fixture) createProgram(t *testing.T, dean appauth.Actor, name string, duration int) *models.Program {
	t.Helper()
	p, err := f.programs.CreateProgram(context.Background(), dean, programInput(name, duration))
	require.NoError(t, err)
	return p
}

func programInput(name string, duration int) models.ProgramInput {
	return models.ProgramInput{
		Name:                  name,
		Level:                 models.LevelUndergraduate,
		DurationYears:         duration,
		ShortDescription:      "A short program description",
		AboutText:             "About the program in some detail",
		EntryRequirementsText: "High school diploma",
	}
}

func courseInput(code string, year int) models.CourseInput {
	return models.CourseInput{
		YearNumber:        year,
		CourseName:        "Course " + code,
		CourseCode:        code,
		Credits:           4,
		TheoreticalHours:  3,
		PracticalHours:    2,
		CourseDescription: "Course description",
	}
}

func profileInput(first, last string) models.ApplicantProfileInput {
	return models.ApplicantProfileInput{
		FirstName:            first,
		LastName:             last,
		DateOfBirth:          "2005-12-10",
		Gender:               "female",
		PassportNo:           "P1234567",
		IDNo:                 "12345678901",
		PlaceOfBirth:         "London",
		ContactNumber:        "+44 20 7946 0000",
		Country:              "United Kingdom",
		AddressLine:          "12 St James's Square",
		City:                 "London",
		State:                "Greater London",
		ZipPostcode:          "SW1Y 4JH",
		MotherFullName:       "Anne Milbanke",
		FatherFullName:       "George Byron",
		HeardAboutUniversity: "Friends",
	}
}

// sequenceCodes returns the given codes in order, then repeats the last one
func sequenceCodes(codes ...string) helpers.ReferenceCodeGenerator {
	i := 0
	return func() string {
		c := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return c
	}
}

func requireAppError(t *testing.T, err error, code string) *apperrors.CustomError {
	t.Helper()
	var ce *apperrors.CustomError
	require.True(t, errors.As(err, &ce), "expected a CustomError, got %v", err)
	require.Equal(t, code, ce.Code)
	return ce
}
