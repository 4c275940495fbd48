package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaon/api/internal/models"
)

type ActivityLogRepository struct {
	pool *pgxpool.Pool
}

func NewActivityLogRepository(pool *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{pool: pool}
}

// Insert appends one activity entry.
func (r *ActivityLogRepository) Insert(ctx context.Context, entry *models.ActivityLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activity_logs (id, company_id, user_id, action, details)
		VALUES ($1, $2, $3, $4, $5)
	`,
		entry.ID,
		entry.CompanyID,
		entry.UserID,
		entry.Action,
		entry.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}

// ListRecent returns the latest entries with the acting user's name.
func (r *ActivityLogRepository) ListRecent(ctx context.Context, companyID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.company_id, l.user_id, l.action, l.details, l.created_at,
		       COALESCE(u.name, '')
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.company_id = $1
		ORDER BY l.created_at DESC
		LIMIT $2
	`, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var entry models.ActivityLog
		if err := rows.Scan(
			&entry.ID,
			&entry.CompanyID,
			&entry.UserID,
			&entry.Action,
			&entry.Details,
			&entry.CreatedAt,
			&entry.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity logs: %w", err)
	}

	return logs, nil
}
