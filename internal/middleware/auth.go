package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reservaon/api/internal/config"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/utils"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID    = "user_id"
	CtxCompanyID = "company_id"
	CtxRole      = "role"
)

// AuthMiddleware validates the bearer token and injects the caller's
// identity. The company ID always comes from the verified claims, never from
// the request body or URL.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token não fornecido."})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Formato de autorização inválido."})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1], cfg)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado."})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxCompanyID, claims.CompanyID)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

// UserID returns the authenticated user's ID from the context.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(CtxUserID).(uuid.UUID)
}

// CompanyID returns the caller's tenant ID from the context.
func CompanyID(c *gin.Context) uuid.UUID {
	return c.MustGet(CtxCompanyID).(uuid.UUID)
}

// Role returns the caller's role from the context.
func Role(c *gin.Context) models.Role {
	return c.MustGet(CtxRole).(models.Role)
}
