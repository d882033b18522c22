package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/yigit/admissions/internal/app/auth"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/repositories/memory"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/pkg/auth"
	"github.com/yigit/admissions/internal/pkg/tokenstore"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	log := zerolog.Nop()
	authz := appauth.NewAuthorizationService()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "seed-test", TokenExp: time.Hour, TokenIssuer: "admissions-test"})

	svc := Services{
		Auth:        services.NewAuthService(mem.Users(), jwtService, tokenstore.NewMemoryStore(), log).WithHashCost(bcrypt.MinCost),
		Program:     services.NewProgramService(mem, mem.Programs(), mem.Courses(), mem.Coordinators(), authz, log),
		Course:      services.NewCourseService(mem, mem.Courses(), mem.Programs(), authz, log),
		Coordinator: services.NewCoordinatorService(mem.Coordinators(), log),
	}

	require.NoError(t, CreateDefaultData(ctx, svc, log))
	require.NoError(t, CreateDefaultData(ctx, svc, log))

	programs, err := svc.Program.ListPrograms(ctx, models.ProgramFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, programs.Items, 1)
	assert.NotNil(t, programs.Items[0].ProgramCoordinatorID)

	courses, err := svc.Course.ListCoursesForProgram(ctx, programs.Items[0].ID, models.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, courses.Items, len(computerEngineeringCourses))

	login, err := svc.Auth.Login(ctx, dto.LoginRequest{Email: DeanEmail, Password: DefaultPassword})
	require.NoError(t, err)
	assert.Equal(t, models.RoleDean, login.User.Role)
}
