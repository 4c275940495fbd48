package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reservaon/api/internal/apperrors"
	"github.com/reservaon/api/internal/audit"
	"github.com/reservaon/api/internal/booking"
	"github.com/reservaon/api/internal/metrics"
	"github.com/reservaon/api/internal/middleware"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	appointments *repository.AppointmentRepository
	engine       *booking.Engine
	audit        *audit.Recorder
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewAppointmentHandler(
	appointments *repository.AppointmentRepository,
	engine *booking.Engine,
	recorder *audit.Recorder,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		engine:       engine,
		audit:        recorder,
		metrics:      m,
		logger:       logger,
	}
}

// List returns the tenant's agenda. Owners see everything; other staff see
// only appointments assigned to them or left unassigned.
func (h *AppointmentHandler) List(c *gin.Context) {
	companyID := middleware.CompanyID(c)

	var visibleTo *uuid.UUID
	if middleware.Role(c) != models.RoleOwner {
		userID := middleware.UserID(c)
		visibleTo = &userID
	}

	appointments, err := h.appointments.ListByCompany(c.Request.Context(), companyID, visibleTo)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// Create books a slot on behalf of a walk-in or phone customer. Staff
// bookings start CONFIRMED and are exempt from the public operating-hours
// gates.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req models.InternalAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID := middleware.CompanyID(c)
	userID := middleware.UserID(c)

	appt, err := h.engine.BookInternal(c.Request.Context(), booking.InternalRequest{
		CompanyID:      companyID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Notes:          req.Notes,
		CreatedBy:      userID,
	})
	if err != nil {
		if h.metrics != nil && apperrors.IsConflict(err) {
			h.metrics.BookingConflicts.Inc()
		}
		respondError(c, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCreated.WithLabelValues("internal").Inc()
	}
	h.audit.Record(companyID, &userID, "appointment.create",
		fmt.Sprintf("Agendamento criado para %s", appt.ClientName))

	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// UpdateStatus moves an appointment through its lifecycle.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Status {
	case models.AppointmentPending, models.AppointmentConfirmed,
		models.AppointmentCompleted, models.AppointmentCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido."})
		return
	}

	companyID := middleware.CompanyID(c)

	if err := h.appointments.UpdateStatus(c.Request.Context(), companyID, id, req.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agendamento não encontrado."})
		return
	}

	userID := middleware.UserID(c)
	h.audit.Record(companyID, &userID, "appointment.status",
		fmt.Sprintf("Agendamento %s marcado como %s", id, req.Status))

	c.JSON(http.StatusOK, gin.H{"message": "Status atualizado com sucesso!"})
}

// Delete removes an appointment from the agenda.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID := middleware.CompanyID(c)

	if err := h.appointments.Delete(c.Request.Context(), companyID, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agendamento não encontrado."})
		return
	}

	userID := middleware.UserID(c)
	h.audit.Record(companyID, &userID, "appointment.delete",
		fmt.Sprintf("Agendamento %s removido", id))

	c.JSON(http.StatusOK, gin.H{"message": "Agendamento removido."})
}
