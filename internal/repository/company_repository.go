package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaon/api/internal/models"
)

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

const companyColumns = `
	c.id, c.name, c.slug, c.category, c.address, c.description, c.logo_url,
	c.whatsapp, c.opening_time, c.closing_time, c.work_days, c.work_schedule,
	c.plan_id, c.subscription_status, c.active, c.created_at, c.updated_at`

// CreateWithOwner creates the company and its OWNER user in one transaction,
// so a failure on either insert leaves no orphan row behind.
func (r *CompanyRepository) CreateWithOwner(ctx context.Context, company *models.Company, owner *models.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin registration: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO companies (id, name, slug, plan_id, subscription_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`,
		company.ID,
		company.Name,
		company.Slug,
		company.PlanID,
		company.SubscriptionStatus,
	).Scan(&company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, company_id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`,
		owner.ID,
		company.ID,
		owner.Name,
		owner.Email,
		owner.PasswordHash,
		models.RoleOwner,
	).Scan(&owner.CreatedAt, &owner.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}
	owner.CompanyID = company.ID
	owner.Role = models.RoleOwner

	return tx.Commit(ctx)
}

// GetByIDWithPlan loads a company and its plan.
func (r *CompanyRepository) GetByIDWithPlan(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return r.getWithPlan(ctx, "c.id = $1", id)
}

// GetBySlugWithPlan loads a company and its plan by slug.
func (r *CompanyRepository) GetBySlugWithPlan(ctx context.Context, slug string) (*models.Company, error) {
	return r.getWithPlan(ctx, "c.slug = $1", slug)
}

func (r *CompanyRepository) getWithPlan(ctx context.Context, where string, arg interface{}) (*models.Company, error) {
	company := &models.Company{}
	plan := &models.Plan{}

	query := fmt.Sprintf(`
		SELECT %s,
		       p.id, p.slug, p.name, p.price, p.created_at, p.updated_at
		FROM companies c
		JOIN plans p ON p.id = c.plan_id
		WHERE %s
	`, companyColumns, where)

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&company.ID,
		&company.Name,
		&company.Slug,
		&company.Category,
		&company.Address,
		&company.Description,
		&company.LogoURL,
		&company.Whatsapp,
		&company.OpeningTime,
		&company.ClosingTime,
		&company.WorkDays,
		&company.WorkSchedule,
		&company.PlanID,
		&company.SubscriptionStatus,
		&company.Active,
		&company.CreatedAt,
		&company.UpdatedAt,
		&plan.ID,
		&plan.Slug,
		&plan.Name,
		&plan.Price,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	company.Plan = plan
	return company, nil
}

// SlugExists reports whether a company already uses the slug.
func (r *CompanyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM companies WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// UpdateSettings persists the company's operating profile.
func (r *CompanyRepository) UpdateSettings(ctx context.Context, id uuid.UUID, req *models.UpdateSettingsRequest) (*models.Company, error) {
	// An omitted workSchedule must not clobber the stored one.
	var workSchedule interface{}
	if len(req.WorkSchedule) > 0 {
		workSchedule = req.WorkSchedule
	}

	_, err := r.pool.Exec(ctx, `
		UPDATE companies SET
			name = COALESCE(NULLIF($2, ''), name),
			category = $3,
			address = $4,
			description = $5,
			logo_url = $6,
			whatsapp = $7,
			opening_time = COALESCE(NULLIF($8, ''), opening_time),
			closing_time = COALESCE(NULLIF($9, ''), closing_time),
			work_days = COALESCE(NULLIF($10, ''), work_days),
			work_schedule = COALESCE($11, work_schedule),
			updated_at = now()
		WHERE id = $1
	`,
		id,
		req.Name,
		req.Category,
		req.Address,
		req.Description,
		req.LogoURL,
		req.Whatsapp,
		req.OpeningTime,
		req.ClosingTime,
		req.WorkDays,
		workSchedule,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return r.GetByIDWithPlan(ctx, id)
}

// ListPublic returns the catalog of bookable companies (ACTIVE or TRIAL),
// optionally filtered by name, with review aggregates attached. Rating
// redaction by plan happens in the handler.
func (r *CompanyRepository) ListPublic(ctx context.Context, search string) ([]models.Company, []float64, []int, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s,
		       p.id, p.slug, p.name, p.price, p.created_at, p.updated_at,
		       COALESCE(AVG(rv.rating), 0), COUNT(rv.id)
		FROM companies c
		JOIN plans p ON p.id = c.plan_id
		LEFT JOIN reviews rv ON rv.company_id = c.id
		WHERE c.active = true
		  AND c.subscription_status IN ('ACTIVE', 'TRIAL')
		  AND c.name ILIKE '%%' || $1 || '%%'
		GROUP BY c.id, p.id
		ORDER BY c.name ASC
	`, companyColumns), search)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var (
		companies []models.Company
		averages  []float64
		totals    []int
	)
	for rows.Next() {
		var company models.Company
		var plan models.Plan
		var avg float64
		var total int
		if err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.Slug,
			&company.Category,
			&company.Address,
			&company.Description,
			&company.LogoURL,
			&company.Whatsapp,
			&company.OpeningTime,
			&company.ClosingTime,
			&company.WorkDays,
			&company.WorkSchedule,
			&company.PlanID,
			&company.SubscriptionStatus,
			&company.Active,
			&company.CreatedAt,
			&company.UpdatedAt,
			&plan.ID,
			&plan.Slug,
			&plan.Name,
			&plan.Price,
			&plan.CreatedAt,
			&plan.UpdatedAt,
			&avg,
			&total,
		); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to scan company: %w", err)
		}
		company.Plan = &plan
		companies = append(companies, company)
		averages = append(averages, avg)
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read companies: %w", err)
	}

	return companies, averages, totals, nil
}
