package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/controllers"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/middleware"
)

// HealthCheck reports whether a backing dependency is reachable
type HealthCheck func(ctx context.Context) error

// Handlers groups everything SetupRouter mounts
type Handlers struct {
	Auth             *controllers.AuthController
	Program          *controllers.ProgramController
	Course           *controllers.CourseController
	Coordinator      *controllers.CoordinatorController
	Applicant        *controllers.ApplicantController
	AdminApplication *controllers.AdminApplicationController
	AuthMiddleware   *middleware.AuthMiddleware
	DatabaseHealth   HealthCheck
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthHandler(h.DatabaseHealth))

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	programs := v1.Group("/programs")
	{
		programs.GET("", h.Program.ListPrograms)
		programs.GET("/:id", h.Program.GetProgram)
		programs.GET("/:id/courses", h.Course.ListCourses)
	}

	v1.GET("/courses/:id", h.Course.GetCourse)

	coordinators := v1.Group("/program-coordinators")
	{
		coordinators.GET("", h.Coordinator.ListCoordinators)
		coordinators.GET("/:id", h.Coordinator.GetCoordinator)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(h.AuthMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", h.Auth.Me)
		authenticated.POST("/auth/logout", h.Auth.Logout)
	}

	dean := authenticated.Group("")
	dean.Use(h.AuthMiddleware.RoleRequired(models.RoleDean))
	{
		dean.POST("/programs", h.Program.CreateProgram)
		dean.PUT("/programs/:id", h.Program.UpdateProgram)
		dean.DELETE("/programs/:id", h.Program.DeleteProgram)
		dean.PATCH("/programs/:id/assign-coordinator", h.Program.AssignCoordinator)
		dean.POST("/programs/:id/courses", h.Course.CreateCourse)

		dean.PUT("/courses/:id", h.Course.UpdateCourse)
		dean.DELETE("/courses/:id", h.Course.DeleteCourse)

		dean.POST("/program-coordinators", h.Coordinator.CreateCoordinator)
		dean.PUT("/program-coordinators/:id", h.Coordinator.UpdateCoordinator)
		dean.DELETE("/program-coordinators/:id", h.Coordinator.DeleteCoordinator)

		admin := dean.Group("/admin/applications")
		{
			admin.GET("", h.AdminApplication.ListApplications)
			admin.GET("/:id", h.AdminApplication.GetApplication)
			admin.PATCH("/:id/accept", h.AdminApplication.AcceptApplication)
			admin.PATCH("/:id/reject", h.AdminApplication.RejectApplication)
		}
	}

	applicant := authenticated.Group("")
	applicant.Use(h.AuthMiddleware.RoleRequired(models.RoleApplicant))
	{
		applicant.GET("/applicant/profile", h.Applicant.GetProfile)
		applicant.PUT("/applicant/profile", h.Applicant.UpsertProfile)
		applicant.POST("/applications", h.Applicant.SubmitApplication)
		applicant.GET("/applications/me", h.Applicant.ListMyApplications)
	}
}

func healthHandler(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Database unavailable")
				c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
				return
			}
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	}
}
