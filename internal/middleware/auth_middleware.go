package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextKeyClaims = "claims"
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
)

// TokenAuthenticator validates a raw token and returns its claims
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	authenticator TokenAuthenticator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator TokenAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

func abortUnauthorized(c *gin.Context, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// tokenFromHeader accepts "Bearer <jwt>" and, for Swagger UI, a bare jwt
func tokenFromHeader(header string) (string, bool) {
	header = strings.Trim(strings.TrimSpace(header), "\"'")
	if token, err := auth.ExtractBearerToken(header); err == nil {
		return token, true
	}
	if strings.Count(header, ".") == 2 && !strings.ContainsAny(header, " \t") {
		return header, true
	}
	return "", false
}

// JWTAuth middleware for JWT token validation. Revoked tokens are rejected.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header missing")
			return
		}

		token, ok := tokenFromHeader(authHeader)
		if !ok {
			abortUnauthorized(c, "Invalid token format")
			return
		}

		claims, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// RoleRequired middleware to check if user has one of the given roles.
// Must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortUnauthorized(c, "User role not found")
			return
		}

		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// GetClaims returns the claims JWTAuth stored on the request
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
