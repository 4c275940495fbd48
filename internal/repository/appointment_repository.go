package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reservaon/api/internal/booking"
	"github.com/reservaon/api/internal/models"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const uniqueViolation = "23505"

// Reserve inserts the appointment if its slot is free. The conflict check and
// insert run in one transaction serialized by an advisory lock keyed on
// (company, instant), so two concurrent requests for the same slot cannot
// both pass the check. The partial unique indexes are a second line of
// defense; a violation surfaces as ErrSlotTaken too.
func (r *AppointmentRepository) Reserve(ctx context.Context, appt *models.Appointment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reservation: %w", err)
	}
	defer tx.Rollback(ctx)

	lockKey := fmt.Sprintf("%s:%d", appt.CompanyID, appt.Date.Unix())
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
		return fmt.Errorf("failed to lock slot: %w", err)
	}

	var taken bool
	if appt.ProfessionalID != nil {
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM appointments
				WHERE company_id = $1 AND date = $2 AND status <> 'CANCELLED'
				  AND professional_id = $3
			)
		`, appt.CompanyID, appt.Date, *appt.ProfessionalID).Scan(&taken)
	} else {
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM appointments
				WHERE company_id = $1 AND date = $2 AND status <> 'CANCELLED'
			)
		`, appt.CompanyID, appt.Date).Scan(&taken)
	}
	if err != nil {
		return fmt.Errorf("failed to check slot availability: %w", err)
	}
	if taken {
		return booking.ErrSlotTaken
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO appointments
			(id, company_id, service_id, professional_id, user_id, client_name, client_phone, notes, date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`,
		appt.ID,
		appt.CompanyID,
		appt.ServiceID,
		appt.ProfessionalID,
		appt.UserID,
		appt.ClientName,
		appt.ClientPhone,
		appt.Notes,
		appt.Date,
		appt.Status,
	).Scan(&appt.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return booking.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return tx.Commit(ctx)
}

// ListByCompany returns the company agenda ordered by date. When
// professionalID is set, only appointments assigned to that professional or
// unassigned ones are returned (staff visibility rule).
func (r *AppointmentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, professionalID *uuid.UUID) ([]models.Appointment, error) {
	query := `
		SELECT a.id, a.company_id, a.service_id, a.professional_id, a.user_id,
		       a.client_name, a.client_phone, a.notes, a.date, a.status, a.created_at,
		       s.id, s.company_id, s.name, s.price, s.duration, s.buffer_time, s.created_at,
		       COALESCE(p.name, '')
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		LEFT JOIN users p ON p.id = a.professional_id
		WHERE a.company_id = $1
	`
	args := []interface{}{companyID}

	if professionalID != nil {
		query += ` AND (a.professional_id = $2 OR a.professional_id IS NULL)`
		args = append(args, *professionalID)
	}
	query += ` ORDER BY a.date ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListRange returns non-cancelled appointments inside [from, to] with their
// service and professional name loaded, newest first.
func (r *AppointmentRepository) ListRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.company_id, a.service_id, a.professional_id, a.user_id,
		       a.client_name, a.client_phone, a.notes, a.date, a.status, a.created_at,
		       s.id, s.company_id, s.name, s.price, s.duration, s.buffer_time, s.created_at,
		       COALESCE(p.name, '')
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		LEFT JOIN users p ON p.id = a.professional_id
		WHERE a.company_id = $1 AND a.date >= $2 AND a.date <= $3
		  AND a.status <> 'CANCELLED'
		ORDER BY a.date DESC
	`, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments in range: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus transitions the appointment status inside the tenant boundary.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status models.AppointmentStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments SET status = $3
		WHERE id = $1 AND company_id = $2
	`, id, companyID, status)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes an appointment inside the tenant boundary.
func (r *AppointmentRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM appointments WHERE id = $1 AND company_id = $2
	`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountInRange counts non-cancelled appointments inside [from, to].
func (r *AppointmentRepository) CountInRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE company_id = $1 AND date >= $2 AND date <= $3 AND status <> 'CANCELLED'
	`, companyID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

// CountUniqueClientPhones counts distinct walk-in client phone numbers.
func (r *AppointmentRepository) CountUniqueClientPhones(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT client_phone) FROM appointments
		WHERE company_id = $1 AND client_phone <> ''
	`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unique clients: %w", err)
	}
	return count, nil
}

func scanAppointments(rows pgx.Rows) ([]models.Appointment, error) {
	var appointments []models.Appointment
	for rows.Next() {
		var appt models.Appointment
		var service models.Service
		if err := rows.Scan(
			&appt.ID,
			&appt.CompanyID,
			&appt.ServiceID,
			&appt.ProfessionalID,
			&appt.UserID,
			&appt.ClientName,
			&appt.ClientPhone,
			&appt.Notes,
			&appt.Date,
			&appt.Status,
			&appt.CreatedAt,
			&service.ID,
			&service.CompanyID,
			&service.Name,
			&service.Price,
			&service.Duration,
			&service.BufferTime,
			&service.CreatedAt,
			&appt.ProfessionalName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appt.Service = &service
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read appointments: %w", err)
	}

	return appointments, nil
}
