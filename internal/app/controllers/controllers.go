package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/middleware"
	"github.com/yigit/admissions/internal/pkg/auth"
)

// currentClaims returns the authenticated caller, writing a 401 if the
// route was registered without JWTAuth
func currentClaims(ctx *gin.Context) (*auth.Claims, bool) {
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return claims, true
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewSuccessResponse(data))
}
