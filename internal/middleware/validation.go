package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj. On failure the
// 400 response is already written and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleBindError(c, err)
		return false
	}
	return true
}

// BindQuery binds and validates query parameters into obj
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		HandleBindError(c, err)
		return false
	}
	return true
}

// ParseIDParam reads a positive int64 path parameter
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails([]dto.FieldError{{Field: name, Message: name + " must be a positive integer"}})
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
