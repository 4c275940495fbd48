package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reservaon/api/internal/audit"
	"github.com/reservaon/api/internal/middleware"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type ServiceHandler struct {
	services  *repository.ServiceRepository
	companies *repository.CompanyRepository
	audit     *audit.Recorder
	logger    *zap.Logger
}

func NewServiceHandler(
	services *repository.ServiceRepository,
	companies *repository.CompanyRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *ServiceHandler {
	return &ServiceHandler{
		services:  services,
		companies: companies,
		audit:     recorder,
		logger:    logger,
	}
}

// List returns the company's service catalog.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.services.ListByCompany(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// Create adds a service. Buffer time between appointments is a paid feature;
// on lower tiers it is silently stored as zero rather than rejected.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Price <= 0 || req.Duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preço e duração devem ser maiores que zero."})
		return
	}

	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	_, ent, err := companyEntitlement(ctx, h.companies, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	bufferTime := req.BufferTime
	if !ent.BufferTimeAllowed {
		bufferTime = 0
	}

	service := &models.Service{
		ID:         uuid.New(),
		CompanyID:  companyID,
		Name:       req.Name,
		Price:      req.Price,
		Duration:   req.Duration,
		BufferTime: bufferTime,
	}

	if err := h.services.Create(ctx, service); err != nil {
		respondError(c, h.logger, err)
		return
	}

	userID := middleware.UserID(c)
	h.audit.Record(companyID, &userID, "service.create",
		fmt.Sprintf("Serviço criado: %s", service.Name))

	c.JSON(http.StatusCreated, gin.H{"service": service})
}

// Delete removes a service from the catalog.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID := middleware.CompanyID(c)

	if err := h.services.Delete(c.Request.Context(), companyID, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Serviço não encontrado."})
		return
	}

	userID := middleware.UserID(c)
	h.audit.Record(companyID, &userID, "service.delete",
		fmt.Sprintf("Serviço %s removido", id))

	c.JSON(http.StatusOK, gin.H{"message": "Serviço removido."})
}
