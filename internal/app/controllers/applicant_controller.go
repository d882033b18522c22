package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/middleware"
)

// ApplicantController serves the applicant's own profile and applications
type ApplicantController struct {
	applicantService   *services.ApplicantService
	applicationService *services.ApplicationService
}

// NewApplicantController creates a new ApplicantController
func NewApplicantController(applicantService *services.ApplicantService, applicationService *services.ApplicationService) *ApplicantController {
	return &ApplicantController{
		applicantService:   applicantService,
		applicationService: applicationService,
	}
}

// GetProfile returns the caller's applicant profile
// @Summary Get my profile
// @Tags applicant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.ApplicantProfile}
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /applicant/profile [get]
func (c *ApplicantController) GetProfile(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}

	profile, err := c.applicantService.GetProfile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profile)
}

// UpsertProfile creates or replaces the caller's applicant profile
// @Summary Save my profile
// @Description Creates the profile on first call; later calls keep the reference code
// @Tags applicant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplicantProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=models.ApplicantProfile}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /applicant/profile [put]
func (c *ApplicantController) UpsertProfile(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}

	var req dto.ApplicantProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.applicantService.UpsertProfile(ctx.Request.Context(), claims.UserID, req.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profile)
}

// SubmitApplication files an application together with the profile
// @Summary Submit application
// @Description Saves the profile and creates a submitted application in one transaction
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitApplicationRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Application submission failed"
// @Router /applications [post]
func (c *ApplicantController) SubmitApplication(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.applicationService.SubmitApplication(ctx.Request.Context(), claims.UserID, req.ProgramID, req.Profile.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp)
}

// ListMyApplications lists the caller's applications
// @Summary List my applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1)
// @Param limit query int false "Page size" minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse[models.ApplicationListItem]}
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /applications/me [get]
func (c *ApplicantController) ListMyApplications(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}

	var query dto.PaginationQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	page, err := c.applicationService.ListMyApplications(ctx.Request.Context(), claims.UserID, query.Page, query.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, page)
}
