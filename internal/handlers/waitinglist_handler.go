package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reservaon/api/internal/middleware"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type WaitingListHandler struct {
	waitingList *repository.WaitingListRepository
	companies   *repository.CompanyRepository
	logger      *zap.Logger
}

func NewWaitingListHandler(
	waitingList *repository.WaitingListRepository,
	companies *repository.CompanyRepository,
	logger *zap.Logger,
) *WaitingListHandler {
	return &WaitingListHandler{
		waitingList: waitingList,
		companies:   companies,
		logger:      logger,
	}
}

// JoinPublic puts a customer on the waiting list when no slot fits. The
// feature only exists on plans that include it.
func (h *WaitingListHandler) JoinPublic(c *gin.Context) {
	var req models.JoinWaitingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	company, ent, err := companyEntitlement(ctx, h.companies, req.CompanyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ent.WaitingListAllowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Esta empresa não possui lista de espera."})
		return
	}
	if !company.SubscriptionStatus.CanAcceptBookings() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Empresa indisponível para agendamentos."})
		return
	}

	entry := &models.WaitingListEntry{
		ID:           uuid.New(),
		CompanyID:    req.CompanyID,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		ServiceName:  req.ServiceName,
		Notes:        req.Notes,
		Status:       models.WaitingListWaiting,
	}

	if err := h.waitingList.Create(ctx, entry); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Você entrou na lista de espera. Avisaremos quando houver vaga!",
		"entry":   entry,
	})
}

// List returns the active waiting list for staff.
func (h *WaitingListHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	_, ent, err := companyEntitlement(ctx, h.companies, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ent.WaitingListAllowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Lista de espera não está incluída no seu plano."})
		return
	}

	entries, err := h.waitingList.ListActive(ctx, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"waitingList": entries})
}

// Remove takes an entry off the list, typically after the customer was
// contacted or booked.
func (h *WaitingListHandler) Remove(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.waitingList.Delete(c.Request.Context(), middleware.CompanyID(c), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removido da lista de espera."})
}
