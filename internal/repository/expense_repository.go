package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaon/api/internal/models"
)

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts a manual expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (id, company_id, description, amount, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`,
		expense.ID,
		expense.CompanyID,
		expense.Description,
		expense.Amount,
		expense.Date,
	).Scan(&expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListRange returns expenses inside [from, to], newest first.
func (r *ExpenseRepository) ListRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]models.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, description, amount, date, created_at
		FROM expenses
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC
	`, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		if err := rows.Scan(
			&expense.ID,
			&expense.CompanyID,
			&expense.Description,
			&expense.Amount,
			&expense.Date,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}

	return expenses, nil
}

// Delete removes an expense inside the tenant boundary.
func (r *ExpenseRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
