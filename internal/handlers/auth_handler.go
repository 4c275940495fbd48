package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reservaon/api/internal/config"
	"github.com/reservaon/api/internal/mailer"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"github.com/reservaon/api/internal/utils"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users         *repository.UserRepository
	companies     *repository.CompanyRepository
	plans         *repository.PlanRepository
	refreshTokens *repository.RefreshTokenRepository
	mailer        *mailer.Mailer
	cfg           *config.Config
	logger        *zap.Logger
}

func NewAuthHandler(
	users *repository.UserRepository,
	companies *repository.CompanyRepository,
	plans *repository.PlanRepository,
	refreshTokens *repository.RefreshTokenRepository,
	m *mailer.Mailer,
	cfg *config.Config,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:         users,
		companies:     companies,
		plans:         plans,
		refreshTokens: refreshTokens,
		mailer:        m,
		cfg:           cfg,
		logger:        logger,
	}
}

// Register creates the Company and its OWNER user in one transaction. Slug
// collisions are auto-resolved by suffixing; duplicate emails are rejected.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	req.Email = utils.NormalizeEmail(req.Email)

	planSlug := req.PlanSlug
	if planSlug == "" {
		planSlug = "basico"
	}
	plan, err := h.plans.GetBySlug(ctx, planSlug)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plano inválido."})
		return
	}

	exists, err := h.users.EmailExists(ctx, req.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "E-mail já cadastrado."})
		return
	}

	slug := utils.NormalizeSlug(req.CompanyName)
	taken, err := h.companies.SlugExists(ctx, slug)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if taken {
		slug = utils.DedupeSlug(slug)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno ao criar conta."})
		return
	}

	company := &models.Company{
		ID:                 uuid.New(),
		Name:               req.CompanyName,
		Slug:               slug,
		PlanID:             plan.ID,
		SubscriptionStatus: models.SubscriptionActive,
	}
	owner := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := h.companies.CreateWithOwner(ctx, company, owner); err != nil {
		h.logger.Error("registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno ao criar conta."})
		return
	}

	go func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		h.mailer.SendWelcomeEmail(mailCtx, owner.Email, owner.Name)
	}()

	var resp models.RegisterResponse
	resp.Message = "Conta criada com sucesso!"
	resp.User.ID = owner.ID
	resp.User.Name = owner.Name
	resp.User.Email = owner.Email
	resp.User.Company = company.Name
	resp.User.Slug = company.Slug
	resp.User.PlanSlug = plan.Slug

	c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and issues an access token plus a database-backed
// refresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.GetByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha inválidos."})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha inválidos."})
		return
	}

	company, err := h.companies.GetByIDWithPlan(ctx, user.CompanyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := utils.GenerateJWT(user, h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno no login."})
		return
	}

	refresh := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresIn: time.Now().Add(time.Duration(h.cfg.JWT.RefreshDays) * 24 * time.Hour).Unix(),
	}
	if err := h.refreshTokens.Create(ctx, refresh); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var resp models.LoginResponse
	resp.Token = token
	resp.RefreshToken = refresh.Token
	resp.User.ID = user.ID
	resp.User.Name = user.Name
	resp.User.Email = user.Email
	resp.User.Company = company.Name
	resp.User.Slug = company.Slug
	resp.User.Role = user.Role
	resp.User.SubscriptionStatus = company.SubscriptionStatus
	resp.User.PlanSlug = company.Plan.Slug

	c.JSON(http.StatusOK, resp)
}

// Refresh rotates a refresh token and issues a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	stored, err := h.refreshTokens.GetByToken(ctx, req.RefreshToken)
	if err != nil || stored.ExpiresIn < time.Now().Unix() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sessão expirada. Faça login novamente."})
		return
	}

	user, err := h.users.GetByID(ctx, stored.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sessão expirada. Faça login novamente."})
		return
	}

	token, err := utils.GenerateJWT(user, h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno no login."})
		return
	}

	// rotate
	_ = h.refreshTokens.Delete(ctx, stored.Token)
	rotated := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresIn: time.Now().Add(time.Duration(h.cfg.JWT.RefreshDays) * 24 * time.Hour).Unix(),
	}
	if err := h.refreshTokens.Create(ctx, rotated); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "refreshToken": rotated.Token})
}

// ForgotPassword stores a one-hour reset token and emails the link. The
// response never reveals whether the address exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	const neutral = "Se o e-mail existir, você receberá um link."
	ctx := c.Request.Context()

	user, err := h.users.GetByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": neutral})
		return
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.users.SetResetToken(ctx, user.ID, token, time.Now().Add(time.Hour)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	go func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		h.mailer.SendPasswordResetEmail(mailCtx, user.Email, token)
	}()

	c.JSON(http.StatusOK, gin.H{"message": neutral})
}

// ResetPassword consumes a valid reset token and replaces the password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.GetByValidResetToken(ctx, req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Link inválido ou expirado."})
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.users.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Senha alterada com sucesso!"})
}
