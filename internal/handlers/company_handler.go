package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reservaon/api/internal/audit"
	"github.com/reservaon/api/internal/cache"
	"github.com/reservaon/api/internal/finance"
	"github.com/reservaon/api/internal/middleware"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	companies    *repository.CompanyRepository
	appointments *repository.AppointmentRepository
	expenses     *repository.ExpenseRepository
	audit        *audit.Recorder
	cache        *cache.Client
	logger       *zap.Logger
}

func NewCompanyHandler(
	companies *repository.CompanyRepository,
	appointments *repository.AppointmentRepository,
	expenses *repository.ExpenseRepository,
	recorder *audit.Recorder,
	cacheClient *cache.Client,
	logger *zap.Logger,
) *CompanyHandler {
	return &CompanyHandler{
		companies:    companies,
		appointments: appointments,
		expenses:     expenses,
		audit:        recorder,
		cache:        cacheClient,
		logger:       logger,
	}
}

// GetSettings returns the caller's company with its plan.
func (h *CompanyHandler) GetSettings(c *gin.Context) {
	company, err := h.companies.GetByIDWithPlan(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Empresa não encontrada."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// UpdateSettings applies a partial update to the company profile and drops
// the cached public page so customers see the change immediately.
func (h *CompanyHandler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	company, err := h.companies.UpdateSettings(ctx, companyID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateCompanyProfile(ctx, company.Slug); err != nil {
			h.logger.Warn("profile cache invalidation failed",
				zap.String("slug", company.Slug), zap.Error(err))
		}
	}

	userID := middleware.UserID(c)
	h.audit.Record(companyID, &userID, "company.settings", "Configurações da empresa atualizadas")

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// GetFinancials aggregates the month's revenue, expenses and profit.
// Confirmed and completed appointments count as realized revenue; pending
// ones as potential. Month and year default to the current period.
func (h *CompanyHandler) GetFinancials(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mês inválido."})
		return
	}

	from, to := finance.MonthRange(year, month, time.Local)

	appointments, err := h.appointments.ListRange(ctx, companyID, from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	expenses, err := h.expenses.ListRange(ctx, companyID, from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	summary := finance.Summarize(appointments, expenses)

	c.JSON(http.StatusOK, gin.H{
		"summary":      summary,
		"appointments": appointments,
		"expenses":     expenses,
	})
}

// AddExpense records a cost entry for the financial report.
func (h *CompanyHandler) AddExpense(c *gin.Context) {
	var req models.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valor deve ser maior que zero."})
		return
	}

	companyID := middleware.CompanyID(c)
	expense := &models.Expense{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
	}

	if err := h.expenses.Create(c.Request.Context(), expense); err != nil {
		respondError(c, h.logger, err)
		return
	}

	userID := middleware.UserID(c)
	h.audit.Record(companyID, &userID, "expense.create",
		fmt.Sprintf("Despesa registrada: %s (R$ %.2f)", expense.Description, expense.Amount))

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// DeleteExpense removes a cost entry.
func (h *CompanyHandler) DeleteExpense(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID := middleware.CompanyID(c)

	if err := h.expenses.Delete(c.Request.Context(), companyID, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Despesa não encontrada."})
		return
	}

	userID := middleware.UserID(c)
	h.audit.Record(companyID, &userID, "expense.delete",
		fmt.Sprintf("Despesa %s removida", id))

	c.JSON(http.StatusOK, gin.H{"message": "Despesa removida."})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
