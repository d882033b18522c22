package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/middleware"
)

// CourseController handles course related operations
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse adds a course to a program
// @Summary Create course
// @Description Year must be within the program duration and the code unique within the program
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID" Format(int64) minimum(1)
// @Param request body dto.CourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or year number"
// @Failure 403 {object} dto.ErrorResponse "Not the program owner"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /programs/{id}/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}
	programID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), claims, programID, req.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, course)
}

// ListCourses lists the courses of a program
// @Summary List program courses
// @Tags courses
// @Produce json
// @Param id path int true "Program ID" Format(int64) minimum(1)
// @Param year query int false "Year number" minimum(1)
// @Param sort query string false "Order" Enums(year, name)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id}/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	programID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var query dto.CourseListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	resp, err := c.courseService.ListCoursesForProgram(ctx.Request.Context(), programID, query.ToFilter())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}

// GetCourse retrieves a course by ID
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course)
}

// UpdateCourse updates a course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.CourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or year number"
// @Failure 403 {object} dto.ErrorResponse "Not the program owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), claims, id, req.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course)
}

// DeleteCourse deletes a course
// @Summary Delete course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the program owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims, ok := currentClaims(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), claims, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.MessageResponse{Message: "Course deleted"})
}
