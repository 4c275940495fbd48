// Command seed upserts the plan catalog. Safe to run repeatedly.
package main

import (
	"context"
	"time"

	"github.com/reservaon/api/internal/config"
	"github.com/reservaon/api/internal/database"
	"github.com/reservaon/api/internal/logging"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(cfg.App.Env)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, &cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	plans := repository.NewPlanRepository(pool)

	catalog := []struct {
		slug  string
		name  string
		price float64
	}{
		{"basico", "Básico", 19.90},
		{"profissional", "Profissional", 29.90},
		{"avancado", "Avançado", 49.90},
		{"premium", "Premium", 69.90},
	}

	for _, plan := range catalog {
		if err := plans.Upsert(ctx, plan.slug, plan.name, plan.price); err != nil {
			logger.Fatal("failed to seed plan", zap.String("slug", plan.slug), zap.Error(err))
		}
		logger.Info("plan seeded", zap.String("slug", plan.slug), zap.Float64("price", plan.price))
	}
}
