package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations run in order at startup. Statements are idempotent so restarts
// are safe without a version table.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id UUID PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		logo_url TEXT NOT NULL DEFAULT '',
		whatsapp TEXT NOT NULL DEFAULT '',
		opening_time TEXT NOT NULL DEFAULT '09:00',
		closing_time TEXT NOT NULL DEFAULT '18:00',
		work_days TEXT NOT NULL DEFAULT '1,2,3,4,5',
		work_schedule JSONB,
		plan_id UUID NOT NULL REFERENCES plans(id),
		subscription_status TEXT NOT NULL DEFAULT 'TRIAL',
		active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		can_view_financials BOOLEAN NOT NULL DEFAULT false,
		can_manage_agenda BOOLEAN NOT NULL DEFAULT false,
		reset_password_token TEXT,
		reset_password_expires TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id),
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		duration INTEGER NOT NULL,
		buffer_time INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id),
		service_id UUID NOT NULL REFERENCES services(id),
		professional_id UUID REFERENCES users(id),
		user_id UUID REFERENCES users(id),
		client_name TEXT NOT NULL,
		client_phone TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// Backstop for the check-and-insert race: the slot reservation runs under
	// an advisory lock, and these indexes make a double-booking impossible
	// even if a future code path skips the lock.
	`CREATE UNIQUE INDEX IF NOT EXISTS appointments_company_slot_idx
		ON appointments (company_id, date)
		WHERE status <> 'CANCELLED' AND professional_id IS NULL`,

	`CREATE UNIQUE INDEX IF NOT EXISTS appointments_professional_slot_idx
		ON appointments (company_id, professional_id, date)
		WHERE status <> 'CANCELLED' AND professional_id IS NOT NULL`,

	`CREATE INDEX IF NOT EXISTS appointments_company_date_idx
		ON appointments (company_id, date)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id),
		description TEXT NOT NULL,
		amount NUMERIC(10,2) NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id),
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL DEFAULT '',
		customer_name TEXT NOT NULL DEFAULT 'Anônimo',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS waiting_list (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id),
		customer_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		service_name TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'WAITING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS activity_logs (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id),
		user_id UUID REFERENCES users(id),
		action TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token TEXT NOT NULL UNIQUE,
		expires_in BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
