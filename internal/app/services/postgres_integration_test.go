package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/yigit/admissions/internal/app/auth"
	"github.com/yigit/admissions/internal/app/migrations"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/auth"
	"github.com/yigit/admissions/internal/pkg/tokenstore"
)

func newPostgresFixture(t *testing.T) (*fixture, *db.PostgresDB) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	database, err := db.NewPostgresDBFromURL(url)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	_, err = migrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, "../../../migrations")
	require.NoError(t, err)
	_, err = database.Pool.Exec(ctx, `TRUNCATE applications, applicant_profiles, courses, programs, program_coordinators, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	repos := repositories.NewRepositories(database.Pool)
	log := zerolog.Nop()
	authz := appauth.NewAuthorizationService()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "pg-test", TokenExp: time.Hour, TokenIssuer: "admissions-test"})

	return &fixture{
		auth:         NewAuthService(repos.UserRepository, jwtService, tokenstore.NewMemoryStore(), log).WithHashCost(bcrypt.MinCost),
		programs:     NewProgramService(database, repos.ProgramRepository, repos.CourseRepository, repos.CoordinatorRepository, authz, log),
		courses:      NewCourseService(database, repos.CourseRepository, repos.ProgramRepository, authz, log),
		coordinators: NewCoordinatorService(repos.CoordinatorRepository, log),
		applicant:    NewApplicantService(database, repos.ApplicantProfileRepository, nil, log),
		applications: NewApplicationService(database, repos.ProgramRepository, repos.ApplicantProfileRepository, repos.ApplicationRepository, nil, log),
		admin:        NewAdminApplicationService(database, repos.AdminApplicationRepository, log),
	}, database
}

func TestPostgresConcurrentProfileUpsert(t *testing.T) {
	f, database := newPostgresFixture(t)
	ctx := context.Background()
	user := f.register(t, "applicant@example.com", models.RoleApplicant)

	const writers = 10
	codes := make([]string, writers)
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := f.applicant.UpsertProfile(ctx, user.ID, profileInput("Ada", "Lovelace"))
			errs[i] = err
			if err == nil {
				codes[i] = p.ReferenceCode
			}
		}(i)
	}
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
		assert.Equal(t, codes[0], codes[i])
	}

	var count int
	require.NoError(t, database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM applicant_profiles WHERE user_id = $1`, user.ID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestPostgresConcurrentReview(t *testing.T) {
	f, _ := newPostgresFixture(t)
	ctx := context.Background()
	dean := f.register(t, "dean@example.com", models.RoleDean)
	user := f.register(t, "applicant@example.com", models.RoleApplicant)
	program := f.createProgram(t, dean, "Computer Engineering", 4)

	res, err := f.applications.SubmitApplication(ctx, user.ID, program.ID, profileInput("Ada", "Lovelace"))
	require.NoError(t, err)

	const reviewers = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < reviewers; i++ {
		target := models.StatusAccepted
		if i%2 == 1 {
			target = models.StatusRejected
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.admin.ReviewApplication(ctx, res.Application.ID, dean.ID, target)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrConflict)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)

	detail, err := f.admin.GetApplication(ctx, res.Application.ID)
	require.NoError(t, err)
	assert.True(t, detail.Status.IsFinal())
	require.NotNil(t, detail.ReviewedBy)
	require.NotNil(t, detail.ReviewedAt)
}

func TestPostgresDirectoryConstraints(t *testing.T) {
	f, _ := newPostgresFixture(t)
	ctx := context.Background()
	dean := f.register(t, "dean@example.com", models.RoleDean)
	program := f.createProgram(t, dean, "Mathematics", 4)

	_, err := f.auth.Register(ctx, dto.RegisterRequest{
		FirstName: "A", LastName: "B", Email: "DEAN@example.com", Password: "secret123", Role: models.RoleDean,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = f.courses.CreateCourse(ctx, dean, program.ID, courseInput("MATH101", 1))
	require.NoError(t, err)
	_, err = f.courses.CreateCourse(ctx, dean, program.ID, courseInput("MATH101", 2))
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)

	_, err = f.courses.CreateCourse(ctx, dean, program.ID, courseInput("MATH301", 3))
	require.NoError(t, err)
	_, err = f.programs.UpdateProgram(ctx, dean, program.ID, programInput("Mathematics", 2))
	requireAppError(t, err, "INVALID_DURATION_YEARS")
	updated, err := f.programs.UpdateProgram(ctx, dean, program.ID, programInput("Mathematics", 3))
	require.NoError(t, err)
	assert.Equal(t, 3, updated.DurationYears)

	_, err = f.coordinators.CreateCoordinator(ctx, models.CoordinatorInput{FullName: "Emmy Noether", Email: "emmy@example.com"})
	require.NoError(t, err)
	_, err = f.coordinators.CreateCoordinator(ctx, models.CoordinatorInput{FullName: "Other", Email: "emmy@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrCoordinatorEmailExists)

	page, err := f.programs.ListPrograms(ctx, models.ProgramFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}
