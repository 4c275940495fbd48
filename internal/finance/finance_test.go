package finance

import (
	"testing"
	"time"

	"github.com/reservaon/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func service(price float64) *models.Service {
	return &models.Service{Price: price}
}

func TestSummarize(t *testing.T) {
	appointments := []models.Appointment{
		{Status: models.AppointmentCompleted, Service: service(30)},
		{Status: models.AppointmentConfirmed, Service: service(20)},
		{Status: models.AppointmentPending, Service: service(30)},
		{Status: models.AppointmentCancelled, Service: service(100)},
	}
	expenses := []models.Expense{
		{Amount: 15},
		{Amount: 10},
	}

	s := Summarize(appointments, expenses)

	assert.Equal(t, 50.0, s.RealizedRevenue)
	assert.Equal(t, 30.0, s.PotentialRevenue)
	assert.Equal(t, 25.0, s.TotalExpenses)
	assert.Equal(t, 25.0, s.NetProfit)
	assert.Equal(t, 3, s.TotalAppointments, "cancelled appointments are not counted")
}

func TestSummarizeSkipsAppointmentsWithoutService(t *testing.T) {
	appointments := []models.Appointment{
		{Status: models.AppointmentCompleted, Service: nil},
		{Status: models.AppointmentCompleted, Service: service(40)},
	}

	s := Summarize(appointments, nil)

	assert.Equal(t, 40.0, s.RealizedRevenue)
	assert.Equal(t, 1, s.TotalAppointments)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Equal(t, Summary{}, s)
}

func TestSummarizeNetProfitCanGoNegative(t *testing.T) {
	s := Summarize(
		[]models.Appointment{{Status: models.AppointmentConfirmed, Service: service(10)}},
		[]models.Expense{{Amount: 50}},
	)
	assert.Equal(t, -40.0, s.NetProfit)
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2026, 2, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.True(t, to.Before(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 28, to.Day())
}

func TestMonthRangeDecemberWrapsYear(t *testing.T) {
	from, to := MonthRange(2025, 12, time.UTC)

	assert.Equal(t, time.December, from.Month())
	assert.Equal(t, 2025, to.Year())
	assert.Equal(t, 31, to.Day())
}
