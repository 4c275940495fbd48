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
	"github.com/reservaon/api/internal/utils"
	"go.uber.org/zap"
)

type TeamHandler struct {
	users     *repository.UserRepository
	companies *repository.CompanyRepository
	audit     *audit.Recorder
	logger    *zap.Logger
}

func NewTeamHandler(
	users *repository.UserRepository,
	companies *repository.CompanyRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *TeamHandler {
	return &TeamHandler{
		users:     users,
		companies: companies,
		audit:     recorder,
		logger:    logger,
	}
}

// List returns the company's staff.
func (h *TeamHandler) List(c *gin.Context) {
	team, err := h.users.ListByCompany(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

// AddMember creates a staff account. The plan's professional cap counts every
// staff user including the owner, so a basico company (cap 1) cannot add
// anyone.
func (h *TeamHandler) AddMember(c *gin.Context) {
	var req models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	_, ent, err := companyEntitlement(ctx, h.companies, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	count, err := h.users.CountByCompany(ctx, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if count >= ent.MaxProfessionals {
		c.JSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("Limite de %d profissionais do seu plano atingido. Faça upgrade para adicionar mais.", ent.MaxProfessionals),
		})
		return
	}

	email := utils.NormalizeEmail(req.Email)
	exists, err := h.users.EmailExists(ctx, email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "E-mail já cadastrado."})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	member := &models.User{
		ID:                uuid.New(),
		CompanyID:         companyID,
		Name:              req.Name,
		Email:             email,
		PasswordHash:      hashedPassword,
		Role:              models.RoleProfessional,
		CanViewFinancials: req.CanViewFinancials,
		CanManageAgenda:   req.CanManageAgenda,
	}

	if err := h.users.Create(ctx, member); err != nil {
		respondError(c, h.logger, err)
		return
	}

	ownerID := middleware.UserID(c)
	h.audit.Record(companyID, &ownerID, "team.add",
		fmt.Sprintf("Profissional %s adicionado", member.Name))

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// UpdateMember adjusts a staff member's permission flags. Omitted flags keep
// their current value.
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID := middleware.CompanyID(c)

	if err := h.users.UpdatePermissions(c.Request.Context(), companyID, id, req.CanViewFinancials, req.CanManageAgenda); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profissional não encontrado."})
		return
	}

	ownerID := middleware.UserID(c)
	h.audit.Record(companyID, &ownerID, "team.update",
		fmt.Sprintf("Permissões do profissional %s atualizadas", id))

	c.JSON(http.StatusOK, gin.H{"message": "Permissões atualizadas."})
}

// RemoveMember deletes a staff account. Owners cannot remove themselves.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if id == middleware.UserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Você não pode remover a si mesmo."})
		return
	}

	companyID := middleware.CompanyID(c)

	if err := h.users.Delete(c.Request.Context(), companyID, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profissional não encontrado."})
		return
	}

	ownerID := middleware.UserID(c)
	h.audit.Record(companyID, &ownerID, "team.remove",
		fmt.Sprintf("Profissional %s removido", id))

	c.JSON(http.StatusOK, gin.H{"message": "Profissional removido."})
}
