package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/middleware"
)

// AdminApplicationController serves the dean inbox
type AdminApplicationController struct {
	adminService *services.AdminApplicationService
}

// NewAdminApplicationController creates a new AdminApplicationController
func NewAdminApplicationController(adminService *services.AdminApplicationService) *AdminApplicationController {
	return &AdminApplicationController{adminService: adminService}
}

// ListApplications lists applications for review
// @Summary List applications
// @Description Filters combine with AND; search matches applicant first/last name or program name
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" minimum(1)
// @Param limit query int false "Page size" minimum(1)
// @Param status query string false "Status" Enums(submitted, accepted, rejected)
// @Param program_id query int false "Program ID"
// @Param search query string false "Search term"
// @Param sort query string false "Order" Enums(created_at_desc, created_at_asc)
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse[models.AdminApplicationListItem]}
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Deans only"
// @Router /admin/applications [get]
func (c *AdminApplicationController) ListApplications(ctx *gin.Context) {
	var query dto.AdminApplicationListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	page, err := c.adminService.ListApplications(ctx.Request.Context(), query.ToFilter(), query.Page, query.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, page)
}

// GetApplication returns one application with the applicant profile
// @Summary Get application
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.AdminApplicationDetail}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admin/applications/{id} [get]
func (c *AdminApplicationController) GetApplication(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.adminService.GetApplication(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, detail)
}

// AcceptApplication accepts a submitted application
// @Summary Accept application
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.ApplicationReview}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application already reviewed"
// @Router /admin/applications/{id}/accept [patch]
func (c *AdminApplicationController) AcceptApplication(ctx *gin.Context) {
	c.review(ctx, models.StatusAccepted)
}

// RejectApplication rejects a submitted application
// @Summary Reject application
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.ApplicationReview}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application already reviewed"
// @Router /admin/applications/{id}/reject [patch]
func (c *AdminApplicationController) RejectApplication(ctx *gin.Context) {
	c.review(ctx, models.StatusRejected)
}

func (c *AdminApplicationController) review(ctx *gin.Context, target models.ApplicationStatus) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	review, err := c.adminService.ReviewApplication(ctx.Request.Context(), id, claims.UserID, target)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, review)
}
