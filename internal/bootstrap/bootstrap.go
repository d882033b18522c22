package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/admissions/internal/app/auth"
	appControllers "github.com/yigit/admissions/internal/app/controllers"
	appMigrations "github.com/yigit/admissions/internal/app/migrations"
	appRepos "github.com/yigit/admissions/internal/app/repositories"
	appRoutes "github.com/yigit/admissions/internal/app/routes"
	appServices "github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/config"
	"github.com/yigit/admissions/internal/db"
	appMiddleware "github.com/yigit/admissions/internal/middleware"
	pkgAuth "github.com/yigit/admissions/internal/pkg/auth"
	"github.com/yigit/admissions/internal/pkg/helpers"
	"github.com/yigit/admissions/internal/pkg/logger"
	"github.com/yigit/admissions/internal/pkg/tokenstore"
	"github.com/yigit/admissions/internal/pkg/validation"
)

// Stores are the persistence dependencies of the services
type Stores struct {
	Users             appServices.UserStore
	Programs          appServices.ProgramStore
	Courses           appServices.CourseStore
	Coordinators      appServices.CoordinatorStore
	Profiles          appServices.ApplicantProfileStore
	Applications      appServices.ApplicationStore
	AdminApplications appServices.AdminApplicationStore
}

// StoresFromRepositories adapts the pgx repositories
func StoresFromRepositories(r *appRepos.Repositories) Stores {
	return Stores{
		Users:             r.UserRepository,
		Programs:          r.ProgramRepository,
		Courses:           r.CourseRepository,
		Coordinators:      r.CoordinatorRepository,
		Profiles:          r.ApplicantProfileRepository,
		Applications:      r.ApplicationRepository,
		AdminApplications: r.AdminApplicationRepository,
	}
}

// Services holds the business services
type Services struct {
	Auth             *appServices.AuthService
	Program          *appServices.ProgramService
	Course           *appServices.CourseService
	Coordinator      *appServices.CoordinatorService
	Applicant        *appServices.ApplicantService
	Application      *appServices.ApplicationService
	AdminApplication *appServices.AdminApplicationService
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services     Services
	Handlers     appRoutes.Handlers
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService
	TokenStore   tokenstore.Store
	Logger       zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// It also applies the process wide settings derived from config.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.ConfigFromSettings(cfg.Logging.Level, cfg.Logging.Format))
	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")

	helpers.ConfigurePageSizes(cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit)
	if err := validation.Register(); err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to register validation rules: %w", err)
	}

	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := RunMigrations(ctx, database, cfg.Database.MigrationsDir, lgr); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// RunMigrations applies every pending migration in dir
func RunMigrations(ctx context.Context, database *db.PostgresDB, dir string, lgr zerolog.Logger) error {
	if _, err := os.Stat(dir); err != nil {
		lgr.Error().Str("path", dir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}

	applied, err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, dir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Strs("applied", applied).Msg("Database migrations up to date")
	return nil
}

// SetupTokenStore returns the Redis revocation store when enabled and the
// in-process store otherwise. The returned func releases it.
func SetupTokenStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (tokenstore.Store, func() error, error) {
	if !cfg.Redis.Enabled {
		lgr.Warn().Msg("Redis disabled, token revocation is kept in memory and not shared between instances")
		return tokenstore.NewMemoryStore(), func() error { return nil }, nil
	}

	store, err := tokenstore.NewRedisStore(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to Redis")
		return nil, nil, err
	}
	lgr.Info().Msg("Redis token store connected")
	return store, store.Close, nil
}

// NewJWTService builds the token service from config
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.JWTExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes services and controllers on top of the
// given stores. Production passes the pgx repositories; tests pass the
// in-memory stores.
func BuildDependencies(
	tx appServices.Transactor,
	stores Stores,
	jwtService *pkgAuth.JWTService,
	revoked tokenstore.Store,
	healthCheck appRoutes.HealthCheck,
	lgr zerolog.Logger,
) *Dependencies {
	deps := &Dependencies{
		JWTService:   jwtService,
		AuthzService: appAuth.NewAuthorizationService(),
		TokenStore:   revoked,
		Logger:       lgr,
	}

	deps.Services = Services{
		Auth:             appServices.NewAuthService(stores.Users, jwtService, revoked, lgr.With().Str("service", "auth").Logger()),
		Program:          appServices.NewProgramService(tx, stores.Programs, stores.Courses, stores.Coordinators, deps.AuthzService, lgr.With().Str("service", "program").Logger()),
		Course:           appServices.NewCourseService(tx, stores.Courses, stores.Programs, deps.AuthzService, lgr.With().Str("service", "course").Logger()),
		Coordinator:      appServices.NewCoordinatorService(stores.Coordinators, lgr.With().Str("service", "coordinator").Logger()),
		Applicant:        appServices.NewApplicantService(tx, stores.Profiles, helpers.NewReferenceCode, lgr.With().Str("service", "applicant").Logger()),
		Application:      appServices.NewApplicationService(tx, stores.Programs, stores.Profiles, stores.Applications, helpers.NewReferenceCode, lgr.With().Str("service", "application").Logger()),
		AdminApplication: appServices.NewAdminApplicationService(tx, stores.AdminApplications, lgr.With().Str("service", "admin_application").Logger()),
	}

	deps.Handlers = appRoutes.Handlers{
		Auth:             appControllers.NewAuthController(deps.Services.Auth),
		Program:          appControllers.NewProgramController(deps.Services.Program),
		Course:           appControllers.NewCourseController(deps.Services.Course),
		Coordinator:      appControllers.NewCoordinatorController(deps.Services.Coordinator),
		Applicant:        appControllers.NewApplicantController(deps.Services.Applicant, deps.Services.Application),
		AdminApplication: appControllers.NewAdminApplicationController(deps.Services.AdminApplication),
		AuthMiddleware:   appMiddleware.NewAuthMiddleware(deps.Services.Auth),
		DatabaseHealth:   healthCheck,
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(mode string, deps *Dependencies) *gin.Engine {
	switch strings.ToLower(mode) {
	case "production", "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Handlers)

	return router
}
