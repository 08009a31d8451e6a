package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/requestdata"
	"github.com/D4V1DYL/HydroSenseAPI/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log.With("middleware", "AuthMiddleware"),
		authService: authService,
	}
}

// RequireAuth verifies the bearer token and stashes the caller's identity in
// the request context for handlers downstream.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		rd, err := am.authService.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}
		if rd.UserID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

// RequireRole allows the request through only when the authenticated caller
// holds one of the given roles. Must run after RequireAuth.
func (am *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		for _, role := range roles {
			if rd.Role == role {
				c.Next()
				return
			}
		}
		am.log.Debug("Role check failed", "user_id", rd.UserID, "role", rd.Role)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you do not have permission to access this resource"})
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
