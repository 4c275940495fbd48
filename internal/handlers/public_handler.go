package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reservaon/api/internal/apperrors"
	"github.com/reservaon/api/internal/booking"
	"github.com/reservaon/api/internal/cache"
	"github.com/reservaon/api/internal/entitlement"
	"github.com/reservaon/api/internal/metrics"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type PublicHandler struct {
	companies *repository.CompanyRepository
	services  *repository.ServiceRepository
	users     *repository.UserRepository
	reviews   *repository.ReviewRepository
	plans     *repository.PlanRepository
	engine    *booking.Engine
	cache     *cache.Client
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewPublicHandler(
	companies *repository.CompanyRepository,
	services *repository.ServiceRepository,
	users *repository.UserRepository,
	reviews *repository.ReviewRepository,
	plans *repository.PlanRepository,
	engine *booking.Engine,
	cacheClient *cache.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		companies: companies,
		services:  services,
		users:     users,
		reviews:   reviews,
		plans:     plans,
		engine:    engine,
		cache:     cacheClient,
		metrics:   m,
		logger:    logger,
	}
}

// ListCompanies returns the bookable catalog. Rating data is included only
// for companies whose plan exposes reviews, so lower tiers show a neutral
// listing instead of an empty zero-star one.
func (h *PublicHandler) ListCompanies(c *gin.Context) {
	ctx := c.Request.Context()

	companies, averages, totals, err := h.companies.ListPublic(ctx, c.Query("search"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result := make([]models.PublicCompany, 0, len(companies))
	for i, company := range companies {
		planSlug := ""
		if company.Plan != nil {
			planSlug = company.Plan.Slug
		}

		pub := models.PublicCompany{
			ID:          company.ID,
			Name:        company.Name,
			Slug:        company.Slug,
			LogoURL:     company.LogoURL,
			Address:     company.Address,
			Description: company.Description,
			Category:    company.Category,
			OpeningTime: company.OpeningTime,
			ClosingTime: company.ClosingTime,
		}
		if entitlement.ForSlug(planSlug).ReviewsAllowed {
			avg := averages[i]
			total := totals[i]
			pub.AverageRating = &avg
			pub.TotalReviews = &total
		}
		result = append(result, pub)
	}

	c.JSON(http.StatusOK, gin.H{"companies": result})
}

type publicProfile struct {
	models.PublicCompany
	Whatsapp      string               `json:"whatsapp,omitempty"`
	WorkDays      string               `json:"workDays"`
	WorkSchedule  []models.DaySchedule `json:"workSchedule,omitempty"`
	OnlineBooking bool                 `json:"onlineBooking"`
	Services      []models.Service     `json:"services"`
	Professionals []publicProfessional `json:"professionals"`
	Reviews       []models.Review      `json:"reviews,omitempty"`
}

type publicProfessional struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetCompanyBySlug serves the public booking page data. The assembled
// profile is cached in Redis for a few minutes since this is the hottest
// read path and changes rarely.
func (h *PublicHandler) GetCompanyBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	if h.cache != nil {
		if payload, err := h.cache.GetCompanyProfile(ctx, slug); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
			return
		} else if !cache.IsMiss(err) {
			h.logger.Warn("profile cache read failed", zap.String("slug", slug), zap.Error(err))
		}
	}

	company, err := h.companies.GetBySlugWithPlan(ctx, slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Empresa não encontrada."})
		return
	}

	if !company.SubscriptionStatus.CanAcceptBookings() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Empresa indisponível para agendamentos."})
		return
	}

	planSlug := ""
	if company.Plan != nil {
		planSlug = company.Plan.Slug
	}
	ent := entitlement.ForSlug(planSlug)

	services, err := h.services.ListByCompany(ctx, company.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	team, err := h.users.ListByCompany(ctx, company.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	professionals := make([]publicProfessional, 0, len(team))
	for _, member := range team {
		if member.Role == models.RoleClient {
			continue
		}
		professionals = append(professionals, publicProfessional{
			ID:   member.ID.String(),
			Name: member.Name,
		})
	}

	profile := publicProfile{
		PublicCompany: models.PublicCompany{
			ID:          company.ID,
			Name:        company.Name,
			Slug:        company.Slug,
			LogoURL:     company.LogoURL,
			Address:     company.Address,
			Description: company.Description,
			Category:    company.Category,
			OpeningTime: company.OpeningTime,
			ClosingTime: company.ClosingTime,
		},
		WorkDays:      company.WorkDays,
		WorkSchedule:  company.WorkSchedule,
		OnlineBooking: ent.OnlineBooking,
		Services:      services,
		Professionals: professionals,
	}
	if ent.Whatsapp {
		profile.Whatsapp = company.Whatsapp
	}
	if ent.ReviewsAllowed {
		avg, total := 0.0, 0
		if avg, total, err = h.reviews.Aggregate(ctx, company.ID); err == nil {
			profile.AverageRating = &avg
			profile.TotalReviews = &total
		}
		if latest, err := h.reviews.ListByCompany(ctx, company.ID, 10); err == nil {
			profile.Reviews = latest
		}
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetCompanyProfile(ctx, slug, string(payload)); err != nil {
			h.logger.Warn("profile cache write failed", zap.String("slug", slug), zap.Error(err))
		}
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// ListPlans exposes the pricing table.
func (h *PublicHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// CreateAppointment books a slot for an anonymous customer.
func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req models.PublicAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.engine.BookPublic(c.Request.Context(), booking.PublicRequest{
		CompanyID:      req.CompanyID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Notes:          req.Notes,
	})
	if err != nil {
		if h.metrics != nil && apperrors.IsConflict(err) {
			h.metrics.BookingConflicts.Inc()
		}
		respondError(c, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCreated.WithLabelValues("public").Inc()
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Agendamento realizado com sucesso!",
		"appointment": appt,
	})
}
