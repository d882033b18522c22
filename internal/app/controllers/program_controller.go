package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/middleware"
)

// ProgramController handles program related operations
type ProgramController struct {
	programService *services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService *services.ProgramService) *ProgramController {
	return &ProgramController{programService: programService}
}

// CreateProgram handles program creation
// @Summary Create a program
// @Description Creates a program owned by the calling dean
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProgramRequest true "Program information"
// @Success 201 {object} dto.APIResponse{data=models.Program} "Program created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}

	var req dto.ProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program, err := c.programService.CreateProgram(ctx.Request.Context(), claims, req.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, program)
}

// ListPrograms lists programs
// @Summary List programs
// @Description Public, paginated program list ordered by name
// @Tags programs
// @Produce json
// @Param page query int false "Page number" minimum(1)
// @Param limit query int false "Page size" minimum(1)
// @Param level query string false "Program level" Enums(undergraduate, postgraduate)
// @Param search query string false "Name contains"
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse[models.Program]}
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Router /programs [get]
func (c *ProgramController) ListPrograms(ctx *gin.Context) {
	var query dto.ProgramListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	page, err := c.programService.ListPrograms(ctx.Request.Context(), query.ToFilter(), query.Page, query.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, page)
}

// GetProgram retrieves a program by ID
// @Summary Get program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Program}
// @Failure 400 {object} dto.ErrorResponse "Invalid program ID"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [get]
func (c *ProgramController) GetProgram(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	program, err := c.programService.GetProgramByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, program)
}

// UpdateProgram updates a program
// @Summary Update program
// @Description Only the dean who created the program may update it
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID" Format(int64) minimum(1)
// @Param request body dto.ProgramRequest true "Program information"
// @Success 200 {object} dto.APIResponse{data=models.Program}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or duration shorter than an existing course year"
// @Failure 403 {object} dto.ErrorResponse "Not the program owner"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [put]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program, err := c.programService.UpdateProgram(ctx.Request.Context(), claims, id, req.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, program)
}

// DeleteProgram deletes a program
// @Summary Delete program
// @Description Deletes a program and its courses. Programs with applications cannot be deleted.
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the program owner"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Program has applications"
// @Router /programs/{id} [delete]
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.programService.DeleteProgram(ctx.Request.Context(), claims, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.MessageResponse{Message: "Program deleted"})
}

// AssignCoordinator sets or clears the program coordinator
// @Summary Assign coordinator
// @Description A null program_coordinator_id unassigns the current coordinator
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID" Format(int64) minimum(1)
// @Param request body dto.AssignCoordinatorRequest true "Coordinator"
// @Success 200 {object} dto.APIResponse{data=dto.AssignCoordinatorResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the program owner"
// @Failure 404 {object} dto.ErrorResponse "Program or coordinator not found"
// @Router /programs/{id}/assign-coordinator [patch]
func (c *ProgramController) AssignCoordinator(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignCoordinatorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.programService.AssignCoordinator(ctx.Request.Context(), claims, id, req.ProgramCoordinatorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}
