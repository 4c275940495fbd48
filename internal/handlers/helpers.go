package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reservaon/api/internal/apperrors"
	"github.com/reservaon/api/internal/entitlement"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

// respondError writes the error's client-safe representation. Internal
// details are logged server-side only.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperrors.Status(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperrors.Message(err)})
}

// companyEntitlement loads the tenant with its plan and resolves the feature
// set the plan unlocks.
func companyEntitlement(ctx context.Context, companies *repository.CompanyRepository, id uuid.UUID) (*models.Company, entitlement.Entitlement, error) {
	company, err := companies.GetByIDWithPlan(ctx, id)
	if err != nil {
		return nil, entitlement.Entitlement{}, apperrors.NotFound("Empresa não encontrada.")
	}
	planSlug := ""
	if company.Plan != nil {
		planSlug = company.Plan.Slug
	}
	return company, entitlement.ForSlug(planSlug), nil
}

// parseIDParam parses a UUID route parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido."})
		return uuid.Nil, false
	}
	return id, true
}
