package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/middleware"
)

// CoordinatorController handles program coordinator operations
type CoordinatorController struct {
	coordinatorService *services.CoordinatorService
}

// NewCoordinatorController creates a new CoordinatorController
func NewCoordinatorController(coordinatorService *services.CoordinatorService) *CoordinatorController {
	return &CoordinatorController{coordinatorService: coordinatorService}
}

// CreateCoordinator handles coordinator creation
// @Summary Create coordinator
// @Tags program-coordinators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CoordinatorRequest true "Coordinator information"
// @Success 201 {object} dto.APIResponse{data=models.ProgramCoordinator}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /program-coordinators [post]
func (c *CoordinatorController) CreateCoordinator(ctx *gin.Context) {
	var req dto.CoordinatorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	coordinator, err := c.coordinatorService.CreateCoordinator(ctx.Request.Context(), req.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, coordinator)
}

// ListCoordinators lists coordinators
// @Summary List coordinators
// @Tags program-coordinators
// @Produce json
// @Param page query int false "Page number" minimum(1)
// @Param limit query int false "Page size" minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse[models.ProgramCoordinator]}
// @Router /program-coordinators [get]
func (c *CoordinatorController) ListCoordinators(ctx *gin.Context) {
	var query dto.PaginationQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	page, err := c.coordinatorService.ListCoordinators(ctx.Request.Context(), query.Page, query.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, page)
}

// GetCoordinator retrieves a coordinator by ID
// @Summary Get coordinator
// @Tags program-coordinators
// @Produce json
// @Param id path int true "Coordinator ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.ProgramCoordinator}
// @Failure 404 {object} dto.ErrorResponse "Coordinator not found"
// @Router /program-coordinators/{id} [get]
func (c *CoordinatorController) GetCoordinator(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	coordinator, err := c.coordinatorService.GetCoordinatorByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, coordinator)
}

// UpdateCoordinator updates a coordinator
// @Summary Update coordinator
// @Tags program-coordinators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coordinator ID" Format(int64) minimum(1)
// @Param request body dto.CoordinatorRequest true "Coordinator information"
// @Success 200 {object} dto.APIResponse{data=models.ProgramCoordinator}
// @Failure 404 {object} dto.ErrorResponse "Coordinator not found"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /program-coordinators/{id} [put]
func (c *CoordinatorController) UpdateCoordinator(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CoordinatorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	coordinator, err := c.coordinatorService.UpdateCoordinator(ctx.Request.Context(), id, req.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, coordinator)
}

// DeleteCoordinator deletes a coordinator
// @Summary Delete coordinator
// @Description Programs assigned to the coordinator are left without one
// @Tags program-coordinators
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coordinator ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Coordinator not found"
// @Router /program-coordinators/{id} [delete]
func (c *CoordinatorController) DeleteCoordinator(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.coordinatorService.DeleteCoordinator(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.MessageResponse{Message: "Coordinator deleted"})
}
