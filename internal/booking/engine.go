// Package booking validates requested appointment slots against the
// company's operating profile and existing reservations, then reserves them.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reservaon/api/internal/apperrors"
	"github.com/reservaon/api/internal/entitlement"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/schedule"
	"go.uber.org/zap"
)

// CompanyStore loads the tenant with its subscription plan.
type CompanyStore interface {
	GetByIDWithPlan(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

// ServiceStore resolves a service inside the tenant boundary.
type ServiceStore interface {
	GetByID(ctx context.Context, companyID, serviceID uuid.UUID) (*models.Service, error)
}

// AppointmentStore reserves a slot atomically. Reserve must return
// ErrSlotTaken when a non-cancelled appointment already occupies the exact
// timestamp (company-wide when the appointment has no professional, per
// professional otherwise).
type AppointmentStore interface {
	Reserve(ctx context.Context, appt *models.Appointment) error
}

// OwnerStore finds the tenant administrator for booking notifications.
type OwnerStore interface {
	GetOwner(ctx context.Context, companyID uuid.UUID) (*models.User, error)
}

// Notifier delivers transactional email. Implementations are best-effort;
// failures must be logged, never returned.
type Notifier interface {
	SendBookingNotification(ctx context.Context, ownerEmail, clientName, serviceName string, date time.Time)
}

// ErrSlotTaken is returned by AppointmentStore.Reserve on a conflicting slot.
var ErrSlotTaken = fmt.Errorf("slot already reserved")

// PublicRequest is a booking made by a customer with no account.
type PublicRequest struct {
	CompanyID      uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID *uuid.UUID
	Date           time.Time
	ClientName     string
	ClientPhone    string
	Notes          string
}

// InternalRequest is a booking made by authenticated staff. CompanyID comes
// from the verified token, never from the request body.
type InternalRequest struct {
	CompanyID      uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID *uuid.UUID
	Date           time.Time
	ClientName     string
	ClientPhone    string
	Notes          string
	CreatedBy      uuid.UUID
}

type Engine struct {
	companies    CompanyStore
	services     ServiceStore
	appointments AppointmentStore
	owners       OwnerStore
	notifier     Notifier
	logger       *zap.Logger
	now          func() time.Time
}

func NewEngine(
	companies CompanyStore,
	services ServiceStore,
	appointments AppointmentStore,
	owners OwnerStore,
	notifier Notifier,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		companies:    companies,
		services:     services,
		appointments: appointments,
		owners:       owners,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// BookPublic runs the full validation chain for a customer-facing booking:
// subscription gate, plan gate, temporal validity, operating window, work
// day, then the atomic slot reservation. The appointment starts PENDING.
func (e *Engine) BookPublic(ctx context.Context, req PublicRequest) (*models.Appointment, error) {
	company, err := e.companies.GetByIDWithPlan(ctx, req.CompanyID)
	if err != nil {
		return nil, apperrors.NotFound("Empresa não encontrada.")
	}

	if !company.SubscriptionStatus.CanAcceptBookings() {
		return nil, apperrors.Forbidden("Empresa indisponível para agendamentos.")
	}

	planSlug := ""
	if company.Plan != nil {
		planSlug = company.Plan.Slug
	}
	if !entitlement.ForSlug(planSlug).OnlineBooking {
		return nil, apperrors.Forbidden("Esta empresa não aceita agendamentos online. Entre em contato diretamente.")
	}

	if err := e.validateSlot(company, req.Date); err != nil {
		return nil, err
	}

	service, err := e.services.GetByID(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		return nil, apperrors.NotFound("Serviço não encontrado.")
	}

	notes := req.Notes
	if notes == "" {
		notes = "Agendamento via Site"
	}

	appt := &models.Appointment{
		ID:             uuid.New(),
		CompanyID:      req.CompanyID,
		ServiceID:      service.ID,
		ProfessionalID: req.ProfessionalID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Notes:          notes,
		Date:           req.Date,
		Status:         models.AppointmentPending,
	}

	if err := e.reserve(ctx, appt); err != nil {
		return nil, err
	}
	appt.Service = service

	e.notifyOwner(company, appt, service)

	return appt, nil
}

// BookInternal reserves a slot for staff. Subscription, plan and
// operating-hours gates do not apply: staff may squeeze customers in outside
// the advertised window. Past dates and conflicts are still rejected.
func (e *Engine) BookInternal(ctx context.Context, req InternalRequest) (*models.Appointment, error) {
	if req.Date.Before(e.now()) {
		return nil, apperrors.Validation("Não é possível agendar no passado.")
	}

	service, err := e.services.GetByID(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		return nil, apperrors.NotFound("Serviço não encontrado.")
	}

	createdBy := req.CreatedBy
	appt := &models.Appointment{
		ID:             uuid.New(),
		CompanyID:      req.CompanyID,
		ServiceID:      service.ID,
		ProfessionalID: req.ProfessionalID,
		UserID:         &createdBy,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Notes:          req.Notes,
		Date:           req.Date,
		Status:         models.AppointmentConfirmed,
	}

	if err := e.reserve(ctx, appt); err != nil {
		return nil, err
	}
	appt.Service = service

	return appt, nil
}

// validateSlot checks the requested timestamp against "now" and the
// company's operating profile. The hour comparison is whole-hour on purpose:
// minutes inside the boundary hours are accepted, matching the advertised
// open/close times.
func (e *Engine) validateSlot(company *models.Company, date time.Time) error {
	if date.Before(e.now()) {
		return apperrors.Validation("Não é possível agendar no passado.")
	}

	window := schedule.For(company, date.Weekday())

	if !window.Working {
		return apperrors.Validation("Não atendemos neste dia.")
	}

	if !window.Contains(date.Hour()) {
		return apperrors.Validation(
			fmt.Sprintf("Fechado. Atendemos das %s às %s.", window.Open, window.Close))
	}

	return nil
}

func (e *Engine) reserve(ctx context.Context, appt *models.Appointment) error {
	err := e.appointments.Reserve(ctx, appt)
	if err == nil {
		return nil
	}
	if err == ErrSlotTaken {
		return apperrors.Conflict("Este horário já está reservado.")
	}
	return apperrors.Internal("Erro interno ao processar agendamento.", err)
}

// notifyOwner emails the company owner about a new public booking. The email
// is off the critical path: lookup and delivery run in the background and
// only log on failure.
func (e *Engine) notifyOwner(company *models.Company, appt *models.Appointment, service *models.Service) {
	if e.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		owner, err := e.owners.GetOwner(ctx, company.ID)
		if err != nil {
			e.logger.Warn("booking notification: owner lookup failed",
				zap.String("company_id", company.ID.String()),
				zap.Error(err))
			return
		}

		e.notifier.SendBookingNotification(ctx, owner.Email, appt.ClientName, service.Name, appt.Date)
	}()
}
