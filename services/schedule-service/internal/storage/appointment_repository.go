package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brightsmile-dental/clinic-scheduling/libs/db"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/model"
)

type AppointmentRepository struct {
	pool *db.Pool
}

func NewAppointmentRepository(pool *db.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// ListDentistDays returns every dentist's appointments with a start inside
// [from, to), grouped per dentist, both levels ordered. Cancelled
// appointments never block slots and are excluded here.
func (r *AppointmentRepository) ListDentistDays(ctx context.Context, from, to time.Time) ([]model.DentistDay, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, dentist_id, dentist_name, service_id, customer_name,
			scheduled_time, end_time, estimated_minutes, status
		FROM appointments
		WHERE scheduled_time >= $1 AND scheduled_time < $2
			AND status <> 'cancelled'
		ORDER BY dentist_id, scheduled_time
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []model.DentistDay
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.DentistID,
			&a.DentistName,
			&a.ServiceID,
			&a.CustomerName,
			&a.ScheduledTime,
			&a.EndTime,
			&a.EstimatedMinutes,
			&a.Status,
		); err != nil {
			return nil, err
		}
		if len(days) == 0 || days[len(days)-1].DentistID != a.DentistID {
			days = append(days, model.DentistDay{
				DentistID:   a.DentistID,
				DentistName: a.DentistName,
			})
		}
		last := &days[len(days)-1]
		last.Appointments = append(last.Appointments, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return days, nil
}

// Create inserts a new appointment. Overlapping bookings for the same
// dentist are rejected by the appointments_no_overlap exclusion constraint
// and surface through IsConflict.
func (r *AppointmentRepository) Create(ctx context.Context, tx pgx.Tx, appt *model.Appointment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO appointments
			(id, dentist_id, dentist_name, service_id, branch_id, customer_name,
			customer_email, customer_phone, scheduled_time, end_time,
			estimated_minutes, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, appt.ID, appt.DentistID, appt.DentistName, appt.ServiceID, appt.BranchID,
		appt.CustomerName, appt.CustomerEmail, appt.CustomerPhone,
		appt.ScheduledTime, appt.EndTime, appt.EstimatedMinutes, appt.Status, appt.Notes)
	return err
}

func (r *AppointmentRepository) CreateConsultation(ctx context.Context, tx pgx.Tx, c *model.Consultation) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO consultations
			(id, customer_name, customer_email, customer_phone, method, content,
			service_id, branch_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.CustomerName, c.CustomerEmail, c.CustomerPhone, c.Method,
		c.Content, c.ServiceID, c.BranchID, c.Notes)
	return err
}

// IsConflict reports unique or exclusion constraint violations, the database
// backstop against two bookers racing for the same slot.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
