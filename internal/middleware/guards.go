package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
)

// RequireOwner restricts a route to the tenant administrator.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != models.RoleOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "Apenas o proprietário pode realizar esta ação."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireFinancialAccess allows owners and members whose canViewFinancials
// flag is set. The flag lives in the database, not in the token, so granting
// or revoking it takes effect immediately.
func RequireFinancialAccess(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) == models.RoleOwner {
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), UserID(c))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não encontrado."})
			c.Abort()
			return
		}

		if !user.CanViewFinancials {
			c.JSON(http.StatusForbidden, gin.H{"error": "Você não tem permissão para ver o financeiro."})
			c.Abort()
			return
		}

		c.Next()
	}
}
