package booking

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/reservaon/api/internal/apperrors"
	"github.com/reservaon/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixedNow is a Monday at 10:00. All test bookings are placed relative to it.
var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type stubCompanyStore struct {
	company *models.Company
	err     error
}

func (s *stubCompanyStore) GetByIDWithPlan(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return s.company, s.err
}

type stubServiceStore struct {
	service *models.Service
	err     error
}

func (s *stubServiceStore) GetByID(ctx context.Context, companyID, serviceID uuid.UUID) (*models.Service, error) {
	return s.service, s.err
}

type stubAppointmentStore struct {
	err  error
	last *models.Appointment
}

func (s *stubAppointmentStore) Reserve(ctx context.Context, appt *models.Appointment) error {
	if s.err != nil {
		return s.err
	}
	s.last = appt
	return nil
}

type stubOwnerStore struct {
	owner *models.User
	err   error
}

func (s *stubOwnerStore) GetOwner(ctx context.Context, companyID uuid.UUID) (*models.User, error) {
	return s.owner, s.err
}

type recordingNotifier struct {
	sent chan string
}

func (n *recordingNotifier) SendBookingNotification(ctx context.Context, ownerEmail, clientName, serviceName string, date time.Time) {
	n.sent <- ownerEmail
}

type fixture struct {
	engine       *Engine
	companies    *stubCompanyStore
	services     *stubServiceStore
	appointments *stubAppointmentStore
	notifier     *recordingNotifier
}

func newFixture(planSlug string, status models.SubscriptionStatus) *fixture {
	company := &models.Company{
		ID:                 uuid.New(),
		Name:               "Barbearia Teste",
		OpeningTime:        "09:00",
		ClosingTime:        "18:00",
		WorkDays:           "1,2,3,4,5",
		SubscriptionStatus: status,
		Plan:               &models.Plan{Slug: planSlug},
	}

	f := &fixture{
		companies:    &stubCompanyStore{company: company},
		services:     &stubServiceStore{service: &models.Service{ID: uuid.New(), Name: "Corte", Price: 50}},
		appointments: &stubAppointmentStore{},
		notifier:     &recordingNotifier{sent: make(chan string, 1)},
	}
	f.engine = NewEngine(
		f.companies,
		f.services,
		f.appointments,
		&stubOwnerStore{owner: &models.User{Email: "dono@example.com"}},
		f.notifier,
		zap.NewNop(),
	)
	f.engine.now = func() time.Time { return fixedNow }
	return f
}

func publicRequest(f *fixture, date time.Time) PublicRequest {
	return PublicRequest{
		CompanyID:  f.companies.company.ID,
		ServiceID:  f.services.service.ID,
		Date:       date,
		ClientName: "Maria",
	}
}

func TestBookPublicSuccess(t *testing.T) {
	f := newFixture("profissional", models.SubscriptionActive)

	// Tuesday 11:00, inside the window.
	appt, err := f.engine.BookPublic(context.Background(), publicRequest(f, fixedNow.AddDate(0, 0, 1).Add(time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentPending, appt.Status)
	assert.Equal(t, "Agendamento via Site", appt.Notes)
	assert.Equal(t, f.services.service, appt.Service)
	assert.NotNil(t, f.appointments.last)

	select {
	case email := <-f.notifier.sent:
		assert.Equal(t, "dono@example.com", email)
	case <-time.After(2 * time.Second):
		t.Fatal("owner notification was never sent")
	}
}

func TestBookPublicRejectsPastDate(t *testing.T) {
	f := newFixture("profissional", models.SubscriptionActive)

	_, err := f.engine.BookPublic(context.Background(), publicRequest(f, fixedNow.Add(-time.Hour)))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
	assert.Equal(t, "Não é possível agendar no passado.", apperrors.Message(err))
}

func TestBookPublicRejectsNonWorkDay(t *testing.T) {
	f := newFixture("profissional", models.SubscriptionActive)

	// Sunday.
	sunday := fixedNow.AddDate(0, 0, 6)
	_, err := f.engine.BookPublic(context.Background(), publicRequest(f, sunday))
	require.Error(t, err)
	assert.Equal(t, "Não atendemos neste dia.", apperrors.Message(err))
}

func TestBookPublicRejectsOutsideHours(t *testing.T) {
	f := newFixture("profissional", models.SubscriptionActive)

	// Tuesday 20:00, after closing.
	late := time.Date(2026, 3, 3, 20, 0, 0, 0, time.UTC)
	_, err := f.engine.BookPublic(context.Background(), publicRequest(f, late))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
	assert.Equal(t, "Fechado. Atendemos das 09:00 às 18:00.", apperrors.Message(err))
}

func TestBookPublicAcceptsMinutesInsideBoundaryHour(t *testing.T) {
	f := newFixture("profissional", models.SubscriptionActive)

	// 17:30 is inside [9, 18) even though 18:00 would not be.
	halfPast := time.Date(2026, 3, 3, 17, 30, 0, 0, time.UTC)
	_, err := f.engine.BookPublic(context.Background(), publicRequest(f, halfPast))
	assert.NoError(t, err)
}

func TestBookPublicRejectsInactiveSubscription(t *testing.T) {
	for _, status := range []models.SubscriptionStatus{models.SubscriptionPastDue, models.SubscriptionCanceled} {
		f := newFixture("profissional", status)

		_, err := f.engine.BookPublic(context.Background(), publicRequest(f, fixedNow.AddDate(0, 0, 1)))
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperrors.Status(err))
		assert.Equal(t, "Empresa indisponível para agendamentos.", apperrors.Message(err))
	}
}

func TestBookPublicTrialAccepts(t *testing.T) {
	f := newFixture("profissional", models.SubscriptionTrial)

	_, err := f.engine.BookPublic(context.Background(), publicRequest(f, fixedNow.AddDate(0, 0, 1).Add(time.Hour)))
	assert.NoError(t, err)
}

func TestBookPublicRejectsBasicoPlan(t *testing.T) {
	f := newFixture("basico", models.SubscriptionActive)

	_, err := f.engine.BookPublic(context.Background(), publicRequest(f, fixedNow.AddDate(0, 0, 1)))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.Status(err))
	assert.Equal(t, "Esta empresa não aceita agendamentos online. Entre em contato diretamente.", apperrors.Message(err))
}

func TestBookPublicSlotConflict(t *testing.T) {
	f := newFixture("profissional", models.SubscriptionActive)
	f.appointments.err = ErrSlotTaken

	_, err := f.engine.BookPublic(context.Background(), publicRequest(f, fixedNow.AddDate(0, 0, 1).Add(time.Hour)))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.Status(err))
	assert.Equal(t, "Este horário já está reservado.", apperrors.Message(err))
}

func TestBookPublicStorageFailureIsInternal(t *testing.T) {
	f := newFixture("profissional", models.SubscriptionActive)
	f.appointments.err = errors.New("connection reset")

	_, err := f.engine.BookPublic(context.Background(), publicRequest(f, fixedNow.AddDate(0, 0, 1).Add(time.Hour)))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.Status(err))
	// The driver error must not leak to the client.
	assert.NotContains(t, apperrors.Message(err), "connection reset")
}

func TestBookInternalSkipsOperatingGates(t *testing.T) {
	// Cancelled subscription, basico plan, Sunday at 23:00. All of that is
	// irrelevant for a staff booking.
	f := newFixture("basico", models.SubscriptionCanceled)

	createdBy := uuid.New()
	sundayNight := time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)

	appt, err := f.engine.BookInternal(context.Background(), InternalRequest{
		CompanyID:  f.companies.company.ID,
		ServiceID:  f.services.service.ID,
		Date:       sundayNight,
		ClientName: "João",
		Notes:      "Encaixe",
		CreatedBy:  createdBy,
	})
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentConfirmed, appt.Status)
	require.NotNil(t, appt.UserID)
	assert.Equal(t, createdBy, *appt.UserID)
	assert.Equal(t, "Encaixe", appt.Notes)
}

func TestBookInternalStillRejectsPast(t *testing.T) {
	f := newFixture("premium", models.SubscriptionActive)

	_, err := f.engine.BookInternal(context.Background(), InternalRequest{
		CompanyID:  f.companies.company.ID,
		ServiceID:  f.services.service.ID,
		Date:       fixedNow.Add(-time.Minute),
		ClientName: "João",
		CreatedBy:  uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
}

func TestBookInternalStillRejectsConflicts(t *testing.T) {
	f := newFixture("premium", models.SubscriptionActive)
	f.appointments.err = ErrSlotTaken

	_, err := f.engine.BookInternal(context.Background(), InternalRequest{
		CompanyID:  f.companies.company.ID,
		ServiceID:  f.services.service.ID,
		Date:       fixedNow.Add(time.Hour),
		ClientName: "João",
		CreatedBy:  uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.Status(err))
}

func TestBookPublicUnknownService(t *testing.T) {
	f := newFixture("profissional", models.SubscriptionActive)
	req := publicRequest(f, fixedNow.AddDate(0, 0, 1).Add(time.Hour))
	f.services.service = nil
	f.services.err = errors.New("no rows")

	_, err := f.engine.BookPublic(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.Status(err))
	assert.Equal(t, "Serviço não encontrado.", apperrors.Message(err))
}
