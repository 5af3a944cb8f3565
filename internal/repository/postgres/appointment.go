package postgres

import (
	"context"
	"fmt"

	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/pkg/database"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

// AppointmentRepository implements repository.AppointmentRepository using PostgreSQL.
type AppointmentRepository struct {
	pool database.DBTX
}

// NewAppointmentRepository creates a new PostgreSQL-backed appointment repository.
func NewAppointmentRepository(pool database.DBTX) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// Create inserts a new appointment in Pendiente state and returns its id.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (int64, error) {
	query := `
		INSERT INTO turnos (nombre, telefono, email, marca, modelo, problema, fecha_turno, hora, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		a.Name,
		a.Phone,
		a.Email,
		a.Brand,
		a.Model,
		a.Problem,
		a.Date,
		a.Time,
		domain.AppointmentPending,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert appointment: %w", err)
	}

	return id, nil
}

// List returns every appointment, newest first.
func (r *AppointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	query := `
		SELECT id, nombre, telefono, email, marca, modelo, problema, fecha_turno, hora, estado, created_at
		FROM turnos
		ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Phone,
			&a.Email,
			&a.Brand,
			&a.Model,
			&a.Problem,
			&a.Date,
			&a.Time,
			&a.Status,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointment rows: %w", err)
	}

	return appointments, nil
}

// MarkAttended moves an appointment to Atendido.
func (r *AppointmentRepository) MarkAttended(ctx context.Context, id int64) error {
	query := `UPDATE turnos SET estado = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, domain.AppointmentAttended, id)
	if err != nil {
		return fmt.Errorf("mark appointment attended: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("turno", fmt.Sprint(id))
	}

	return nil
}

// Delete removes an appointment.
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM turnos WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("turno", fmt.Sprint(id))
	}

	return nil
}
