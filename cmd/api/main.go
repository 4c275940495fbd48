package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reservaon/api/internal/audit"
	"github.com/reservaon/api/internal/booking"
	"github.com/reservaon/api/internal/cache"
	"github.com/reservaon/api/internal/config"
	"github.com/reservaon/api/internal/database"
	"github.com/reservaon/api/internal/handlers"
	"github.com/reservaon/api/internal/logging"
	"github.com/reservaon/api/internal/mailer"
	"github.com/reservaon/api/internal/metrics"
	"github.com/reservaon/api/internal/middleware"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(cfg.App.Env)
	defer logger.Sync()

	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()

	pool, err := database.NewPool(ctx, &cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	cacheClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, serving without profile cache", zap.Error(err))
		cacheClient = nil
	} else {
		defer cacheClient.Close()
	}

	// repositories
	companies := repository.NewCompanyRepository(pool)
	users := repository.NewUserRepository(pool)
	plans := repository.NewPlanRepository(pool)
	services := repository.NewServiceRepository(pool)
	appointments := repository.NewAppointmentRepository(pool)
	expenses := repository.NewExpenseRepository(pool)
	reviews := repository.NewReviewRepository(pool)
	waitingList := repository.NewWaitingListRepository(pool)
	activityLogs := repository.NewActivityLogRepository(pool)
	refreshTokens := repository.NewRefreshTokenRepository(pool)

	mail := mailer.New(cfg, logger)
	recorder := audit.NewRecorder(activityLogs, logger)
	m := metrics.New()

	engine := booking.NewEngine(companies, services, appointments, users, mail, logger)

	// handlers
	authHandler := handlers.NewAuthHandler(users, companies, plans, refreshTokens, mail, cfg, logger)
	publicHandler := handlers.NewPublicHandler(companies, services, users, reviews, plans, engine, cacheClient, m, logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointments, engine, recorder, m, logger)
	companyHandler := handlers.NewCompanyHandler(companies, appointments, expenses, recorder, cacheClient, logger)
	teamHandler := handlers.NewTeamHandler(users, companies, recorder, logger)
	serviceHandler := handlers.NewServiceHandler(services, companies, recorder, logger)
	reviewHandler := handlers.NewReviewHandler(reviews, companies, logger)
	waitingListHandler := handlers.NewWaitingListHandler(waitingList, companies, logger)
	logHandler := handlers.NewLogHandler(activityLogs, companies, logger)
	dashboardHandler := handlers.NewDashboardHandler(appointments, expenses, logger)
	analyticsHandler := handlers.NewAnalyticsHandler(appointments, companies, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.MetricsMiddleware(m))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	public := api.Group("/public")
	{
		public.GET("/companies", publicHandler.ListCompanies)
		public.GET("/companies/:slug", publicHandler.GetCompanyBySlug)
		public.GET("/companies/:slug/reviews", reviewHandler.ListPublicBySlug)
		public.GET("/plans", publicHandler.ListPlans)
		public.POST("/appointments", publicHandler.CreateAppointment)
		public.POST("/reviews", reviewHandler.CreatePublic)
		public.POST("/waiting-list", waitingListHandler.JoinPublic)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/appointments", appointmentHandler.List)
		protected.POST("/appointments", appointmentHandler.Create)
		protected.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
		protected.DELETE("/appointments/:id", appointmentHandler.Delete)

		protected.GET("/company", companyHandler.GetSettings)
		protected.PUT("/company", middleware.RequireOwner(), companyHandler.UpdateSettings)

		financial := protected.Group("")
		financial.Use(middleware.RequireFinancialAccess(users))
		{
			financial.GET("/company/financials", companyHandler.GetFinancials)
			financial.POST("/expenses", companyHandler.AddExpense)
			financial.DELETE("/expenses/:id", companyHandler.DeleteExpense)
			financial.GET("/analytics", analyticsHandler.Stats)
		}

		team := protected.Group("/team")
		{
			team.GET("", teamHandler.List)
			team.POST("", middleware.RequireOwner(), teamHandler.AddMember)
			team.PATCH("/:id", middleware.RequireOwner(), teamHandler.UpdateMember)
			team.DELETE("/:id", middleware.RequireOwner(), teamHandler.RemoveMember)
		}

		protected.GET("/services", serviceHandler.List)
		protected.POST("/services", serviceHandler.Create)
		protected.DELETE("/services/:id", serviceHandler.Delete)

		protected.GET("/reviews", reviewHandler.List)

		protected.GET("/waiting-list", waitingListHandler.List)
		protected.DELETE("/waiting-list/:id", waitingListHandler.Remove)

		protected.GET("/logs", middleware.RequireOwner(), logHandler.List)
		protected.GET("/dashboard", dashboardHandler.Stats)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
