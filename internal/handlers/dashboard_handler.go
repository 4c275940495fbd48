package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reservaon/api/internal/finance"
	"github.com/reservaon/api/internal/middleware"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	appointments *repository.AppointmentRepository
	expenses     *repository.ExpenseRepository
	logger       *zap.Logger
}

func NewDashboardHandler(
	appointments *repository.AppointmentRepository,
	expenses *repository.ExpenseRepository,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		appointments: appointments,
		expenses:     expenses,
		logger:       logger,
	}
}

// Stats returns the landing numbers for the staff dashboard: today's
// appointment count, the running month's financial summary and how many
// distinct clients the company has served.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.AddDate(0, 0, 1)

	todayCount, err := h.appointments.CountInRange(ctx, companyID, dayStart, dayEnd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	monthStart, monthEnd := finance.MonthRange(now.Year(), int(now.Month()), time.Local)

	appointments, err := h.appointments.ListRange(ctx, companyID, monthStart, monthEnd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	expenses, err := h.expenses.ListRange(ctx, companyID, monthStart, monthEnd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	uniqueClients, err := h.appointments.CountUniqueClientPhones(ctx, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	summary := finance.Summarize(appointments, expenses)

	c.JSON(http.StatusOK, gin.H{
		"todayAppointments": todayCount,
		"monthSummary":      summary,
		"uniqueClients":     uniqueClients,
	})
}
