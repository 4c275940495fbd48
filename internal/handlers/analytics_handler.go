package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reservaon/api/internal/finance"
	"github.com/reservaon/api/internal/middleware"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	appointments *repository.AppointmentRepository
	companies    *repository.CompanyRepository
	logger       *zap.Logger
}

func NewAnalyticsHandler(
	appointments *repository.AppointmentRepository,
	companies *repository.CompanyRepository,
	logger *zap.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		appointments: appointments,
		companies:    companies,
		logger:       logger,
	}
}

type serviceBreakdown struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type professionalBreakdown struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type dailyRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

// Stats breaks the month down by service, professional and day. Only
// realized revenue (confirmed or completed appointments) is counted.
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	_, ent, err := companyEntitlement(ctx, h.companies, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ent.AnalyticsAllowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Relatórios avançados não estão incluídos no seu plano."})
		return
	}

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

	byService := map[string]*serviceBreakdown{}
	byProfessional := map[string]int{}
	byDay := map[string]float64{}

	for _, appt := range appointments {
		realized := appt.Status == models.AppointmentConfirmed ||
			appt.Status == models.AppointmentCompleted
		if !realized || appt.Service == nil {
			continue
		}

		entry, ok := byService[appt.Service.Name]
		if !ok {
			entry = &serviceBreakdown{Name: appt.Service.Name}
			byService[appt.Service.Name] = entry
		}
		entry.Count++
		entry.Revenue += appt.Service.Price

		professional := appt.ProfessionalName
		if professional == "" {
			professional = "Sem profissional"
		}
		byProfessional[professional]++

		byDay[appt.Date.In(time.Local).Format("2006-01-02")] += appt.Service.Price
	}

	services := make([]serviceBreakdown, 0, len(byService))
	for _, entry := range byService {
		services = append(services, *entry)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Revenue > services[j].Revenue })

	professionals := make([]professionalBreakdown, 0, len(byProfessional))
	for name, count := range byProfessional {
		professionals = append(professionals, professionalBreakdown{Name: name, Count: count})
	}
	sort.Slice(professionals, func(i, j int) bool { return professionals[i].Count > professionals[j].Count })

	days := make([]dailyRevenue, 0, len(byDay))
	for day, revenue := range byDay {
		days = append(days, dailyRevenue{Day: day, Revenue: revenue})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })

	c.JSON(http.StatusOK, gin.H{
		"byService":      services,
		"byProfessional": professionals,
		"dailyRevenue":   days,
	})
}
