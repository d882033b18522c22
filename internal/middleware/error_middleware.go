package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

type errorMapping struct {
	kind    error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order; the first kind the error wraps wins
var errorMappings = []errorMapping{
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeNotFound, "Resource not found"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeRevokedToken, "Token revoked"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInternal, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
}

// HandleAPIError renders err as an error envelope. Domain errors keep their
// own code, message and details; anything unrecognised becomes a logged 500.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")

	matched := false
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			status = m.status
			detail = dto.NewErrorDetail(m.code, m.message)
			matched = true
			break
		}
	}

	var customErr *apperrors.CustomError
	if matched && errors.As(err, &customErr) {
		if customErr.Code != "" {
			detail.Code = dto.ErrorCode(customErr.Code)
		}
		if customErr.Message != "" {
			detail.Message = customErr.Message
		}
		if customErr.Details != nil {
			detail.Details = customErr.Details
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// HandleBindError renders a request binding or validation failure as 400
func HandleBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
