package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reservaon/api/internal/entitlement"
	"github.com/reservaon/api/internal/middleware"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	reviews   *repository.ReviewRepository
	companies *repository.CompanyRepository
	logger    *zap.Logger
}

func NewReviewHandler(
	reviews *repository.ReviewRepository,
	companies *repository.CompanyRepository,
	logger *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		companies: companies,
		logger:    logger,
	}
}

// CreatePublic records a customer review. Only companies whose plan exposes
// reviews accept them.
func (h *ReviewHandler) CreatePublic(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A nota deve ser entre 1 e 5."})
		return
	}

	ctx := c.Request.Context()

	_, ent, err := companyEntitlement(ctx, h.companies, req.CompanyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ent.ReviewsAllowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Esta empresa não recebe avaliações online."})
		return
	}

	customerName := req.CustomerName
	if customerName == "" {
		customerName = "Cliente"
	}

	review := &models.Review{
		ID:           uuid.New(),
		CompanyID:    req.CompanyID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		CustomerName: customerName,
	}

	if err := h.reviews.Create(ctx, review); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Avaliação enviada. Obrigado!", "review": review})
}

// ListPublicBySlug returns a company's reviews for its public page.
func (h *ReviewHandler) ListPublicBySlug(c *gin.Context) {
	ctx := c.Request.Context()

	company, err := h.companies.GetBySlugWithPlan(ctx, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Empresa não encontrada."})
		return
	}

	planSlug := ""
	if company.Plan != nil {
		planSlug = company.Plan.Slug
	}
	if !entitlement.ForSlug(planSlug).ReviewsAllowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Esta empresa não recebe avaliações online."})
		return
	}

	reviews, err := h.reviews.ListByCompany(ctx, company.ID, 0)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	average, total, err := h.reviews.Aggregate(ctx, company.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": average,
		"totalReviews":  total,
	})
}

// List returns the company's reviews with the aggregate rating, for the
// staff dashboard.
func (h *ReviewHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	_, ent, err := companyEntitlement(ctx, h.companies, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ent.ReviewsAllowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Avaliações não estão incluídas no seu plano."})
		return
	}

	reviews, err := h.reviews.ListByCompany(ctx, companyID, 0)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	average, total, err := h.reviews.Aggregate(ctx, companyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": average,
		"totalReviews":  total,
	})
}
