package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reservaon/api/internal/middleware"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type LogHandler struct {
	logs      *repository.ActivityLogRepository
	companies *repository.CompanyRepository
	logger    *zap.Logger
}

func NewLogHandler(
	logs *repository.ActivityLogRepository,
	companies *repository.CompanyRepository,
	logger *zap.Logger,
) *LogHandler {
	return &LogHandler{
		logs:      logs,
		companies: companies,
		logger:    logger,
	}
}

// List returns the latest activity entries. The audit trail is a premium
// feature; entries are still recorded on every tier so an upgrade reveals
// the full history.
func (h *LogHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	_, ent, err := companyEntitlement(ctx, h.companies, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ent.AuditLogAllowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Logs de atividade não estão incluídos no seu plano."})
		return
	}

	entries, err := h.logs.ListRecent(ctx, companyID, 50)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": entries})
}
