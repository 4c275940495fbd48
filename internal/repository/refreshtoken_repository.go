package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaon/api/internal/models"
)

type RefreshTokenRepository struct {
	pool *pgxpool.Pool
}

func NewRefreshTokenRepository(pool *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool}
}

// Create stores a refresh token.
func (r *RefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, expires_in)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`,
		token.ID,
		token.UserID,
		token.Token,
		token.ExpiresIn,
	).Scan(&token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// GetByToken retrieves a refresh token by its opaque value.
func (r *RefreshTokenRepository) GetByToken(ctx context.Context, value string) (*models.RefreshToken, error) {
	token := &models.RefreshToken{}

	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, token, expires_in, created_at
		FROM refresh_tokens
		WHERE token = $1
	`, value).Scan(
		&token.ID,
		&token.UserID,
		&token.Token,
		&token.ExpiresIn,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return token, nil
}

// Delete removes a refresh token (rotation or logout).
func (r *RefreshTokenRepository) Delete(ctx context.Context, value string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, value)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
