package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaon/api/internal/models"
)

type PlanRepository struct {
	pool *pgxpool.Pool
}

func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

// GetBySlug retrieves a plan by its slug.
func (r *PlanRepository) GetBySlug(ctx context.Context, slug string) (*models.Plan, error) {
	plan := &models.Plan{}

	err := r.pool.QueryRow(ctx, `
		SELECT id, slug, name, price, created_at, updated_at
		FROM plans
		WHERE slug = $1
	`, slug).Scan(
		&plan.ID,
		&plan.Slug,
		&plan.Name,
		&plan.Price,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return plan, nil
}

// GetAll returns the plan catalog ordered by price.
func (r *PlanRepository) GetAll(ctx context.Context) ([]models.Plan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, name, price, created_at, updated_at
		FROM plans
		ORDER BY price ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var plan models.Plan
		if err := rows.Scan(
			&plan.ID,
			&plan.Slug,
			&plan.Name,
			&plan.Price,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plans: %w", err)
	}

	return plans, nil
}

// Upsert inserts or updates a plan keyed by slug. Used by the seed command.
func (r *PlanRepository) Upsert(ctx context.Context, slug, name string, price float64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO plans (id, slug, name, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			updated_at = now()
	`, uuid.New(), slug, name, price)
	if err != nil {
		return fmt.Errorf("failed to upsert plan %s: %w", slug, err)
	}
	return nil
}
