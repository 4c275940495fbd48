package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaon/api/internal/models"
)

type WaitingListRepository struct {
	pool *pgxpool.Pool
}

func NewWaitingListRepository(pool *pgxpool.Pool) *WaitingListRepository {
	return &WaitingListRepository{pool: pool}
}

// Create inserts a waiting-list entry with WAITING status.
func (r *WaitingListRepository) Create(ctx context.Context, entry *models.WaitingListEntry) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO waiting_list (id, company_id, customer_name, phone, service_name, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`,
		entry.ID,
		entry.CompanyID,
		entry.CustomerName,
		entry.Phone,
		entry.ServiceName,
		entry.Notes,
		entry.Status,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create waiting list entry: %w", err)
	}
	return nil
}

// ListActive returns non-cancelled entries oldest first (queue order).
func (r *WaitingListRepository) ListActive(ctx context.Context, companyID uuid.UUID) ([]models.WaitingListEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, customer_name, phone, service_name, notes, status, created_at
		FROM waiting_list
		WHERE company_id = $1 AND status <> 'CANCELLED'
		ORDER BY created_at ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting list: %w", err)
	}
	defer rows.Close()

	var entries []models.WaitingListEntry
	for rows.Next() {
		var entry models.WaitingListEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.CompanyID,
			&entry.CustomerName,
			&entry.Phone,
			&entry.ServiceName,
			&entry.Notes,
			&entry.Status,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan waiting list entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read waiting list: %w", err)
	}

	return entries, nil
}

// Delete removes an entry inside the tenant boundary.
func (r *WaitingListRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM waiting_list WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete waiting list entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
