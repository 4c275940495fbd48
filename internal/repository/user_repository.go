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

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	id, company_id, name, email, password_hash, role,
	can_view_financials, can_manage_agenda,
	reset_password_token, reset_password_expires, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.CompanyID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CanViewFinancials,
		&user.CanManageAgenda,
		&user.ResetPasswordToken,
		&user.ResetPasswordExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns), email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns), id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// EmailExists reports whether the email is already registered.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// GetOwner finds the OWNER user of a company.
func (r *UserRepository) GetOwner(ctx context.Context, companyID uuid.UUID) (*models.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users WHERE company_id = $1 AND role = 'OWNER' LIMIT 1
	`, userColumns), companyID))
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	return user, nil
}

// ListByCompany returns the team roster.
func (r *UserRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM users WHERE company_id = $1 ORDER BY created_at ASC
	`, userColumns), companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team: %w", err)
	}

	return users, nil
}

// CountByCompany counts team members, used against the plan's professional cap.
func (r *UserRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE company_id = $1`, companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count team: %w", err)
	}
	return count, nil
}

// Create inserts a staff member.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, company_id, name, email, password_hash, role, can_view_financials, can_manage_agenda)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`,
		user.ID,
		user.CompanyID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CanViewFinancials,
		user.CanManageAgenda,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdatePermissions changes a member's permission flags inside the tenant.
func (r *UserRepository) UpdatePermissions(ctx context.Context, companyID, id uuid.UUID, canViewFinancials, canManageAgenda *bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET
			can_view_financials = COALESCE($3, can_view_financials),
			can_manage_agenda = COALESCE($4, can_manage_agenda),
			updated_at = now()
		WHERE id = $1 AND company_id = $2
	`, id, companyID, canViewFinancials, canManageAgenda)
	if err != nil {
		return fmt.Errorf("failed to update permissions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a member inside the tenant boundary.
func (r *UserRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetResetToken stores the password-recovery token and its expiry.
func (r *UserRepository) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expires time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET reset_password_token = $2, reset_password_expires = $3, updated_at = now()
		WHERE id = $1
	`, userID, token, expires)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	return nil
}

// GetByValidResetToken finds the user holding a non-expired reset token.
func (r *UserRepository) GetByValidResetToken(ctx context.Context, token string) (*models.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		WHERE reset_password_token = $1 AND reset_password_expires > now()
	`, userColumns), token))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the password hash and clears any reset token.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2,
			reset_password_token = NULL, reset_password_expires = NULL,
			updated_at = now()
		WHERE id = $1
	`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
