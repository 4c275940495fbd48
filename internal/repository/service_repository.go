package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaon/api/internal/models"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// GetByID loads a service inside the tenant boundary.
func (r *ServiceRepository) GetByID(ctx context.Context, companyID, serviceID uuid.UUID) (*models.Service, error) {
	service := &models.Service{}

	err := r.pool.QueryRow(ctx, `
		SELECT id, company_id, name, price, duration, buffer_time, created_at
		FROM services
		WHERE id = $1 AND company_id = $2
	`, serviceID, companyID).Scan(
		&service.ID,
		&service.CompanyID,
		&service.Name,
		&service.Price,
		&service.Duration,
		&service.BufferTime,
		&service.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return service, nil
}

// ListByCompany returns all services of a company.
func (r *ServiceRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, name, price, duration, buffer_time, created_at
		FROM services
		WHERE company_id = $1
		ORDER BY name ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var service models.Service
		if err := rows.Scan(
			&service.ID,
			&service.CompanyID,
			&service.Name,
			&service.Price,
			&service.Duration,
			&service.BufferTime,
			&service.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read services: %w", err)
	}

	return services, nil
}

// Create inserts a service.
func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO services (id, company_id, name, price, duration, buffer_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`,
		service.ID,
		service.CompanyID,
		service.Name,
		service.Price,
		service.Duration,
		service.BufferTime,
	).Scan(&service.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// Delete removes a service inside the tenant boundary.
func (r *ServiceRepository) Delete(ctx context.Context, companyID, serviceID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM services WHERE id = $1 AND company_id = $2`, serviceID, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
