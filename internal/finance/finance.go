// Package finance aggregates appointment revenue and manual expenses over a
// month window.
package finance

import (
	"time"

	"github.com/reservaon/api/internal/models"
)

// Summary is the financial picture of one month. Realized revenue counts
// COMPLETED and CONFIRMED appointments; PENDING ones are potential revenue.
// Cancelled appointments count in neither bucket.
type Summary struct {
	RealizedRevenue   float64 `json:"realizedRevenue"`
	PotentialRevenue  float64 `json:"potentialRevenue"`
	TotalExpenses     float64 `json:"totalExpenses"`
	NetProfit         float64 `json:"netProfit"`
	TotalAppointments int     `json:"totalAppointments"`
}

// Summarize folds the two result sets into a Summary. Appointments without a
// loaded service are skipped since their price is unknown.
func Summarize(appointments []models.Appointment, expenses []models.Expense) Summary {
	var s Summary

	for _, appt := range appointments {
		if appt.Status == models.AppointmentCancelled || appt.Service == nil {
			continue
		}
		s.TotalAppointments++
		switch appt.Status {
		case models.AppointmentCompleted, models.AppointmentConfirmed:
			s.RealizedRevenue += appt.Service.Price
		default:
			s.PotentialRevenue += appt.Service.Price
		}
	}

	for _, e := range expenses {
		s.TotalExpenses += e.Amount
	}

	s.NetProfit = s.RealizedRevenue - s.TotalExpenses

	return s
}

// MonthRange returns the closed interval [first instant, last instant] of the
// given month in the location. Month is 1-12.
func MonthRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}
