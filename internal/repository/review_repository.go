package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaon/api/internal/models"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a customer review.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (id, company_id, rating, comment, customer_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`,
		review.ID,
		review.CompanyID,
		review.Rating,
		review.Comment,
		review.CustomerName,
	).Scan(&review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListByCompany returns reviews newest first, optionally limited.
func (r *ReviewRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]models.Review, error) {
	query := `
		SELECT id, company_id, rating, comment, customer_name, created_at
		FROM reviews
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{companyID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.CompanyID,
			&review.Rating,
			&review.Comment,
			&review.CustomerName,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}

	return reviews, nil
}

// Aggregate returns the average rating and total count for a company.
func (r *ReviewRepository) Aggregate(ctx context.Context, companyID uuid.UUID) (float64, int, error) {
	var avg float64
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE company_id = $1
	`, companyID).Scan(&avg, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	return avg, total, nil
}
