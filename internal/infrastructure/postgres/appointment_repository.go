package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

const appointmentColumns = `id, customer_id, COALESCE(pet_id, ''), COALESCE(description, ''), COALESCE(technician, ''), scheduled_at, COALESCE(document_id, ''), COALESCE(created_by, ''), created_at, updated_at`

// AppointmentRepo implementación del puerto AppointmentRepository sobre
// PostgreSQL (citas y líneas de servicio).
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

// Create inserta una cita.
func (r *AppointmentRepo) Create(a *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, customer_id, pet_id, description, technician, scheduled_at, document_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CustomerID, nullIfEmpty(a.PetID), nullIfEmpty(a.Description), nullIfEmpty(a.Technician),
		a.ScheduledAt, nullIfEmpty(a.DocumentID), nullIfEmpty(a.CreatedBy), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// Update actualiza la cita (enlace a factura incluido).
func (r *AppointmentRepo) Update(a *entity.Appointment) error {
	query := `
		UPDATE appointments SET description = $2, technician = $3, scheduled_at = $4, document_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, nullIfEmpty(a.Description), nullIfEmpty(a.Technician),
		a.ScheduledAt, nullIfEmpty(a.DocumentID), a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepo) scanOne(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(
		&a.ID, &a.CustomerID, &a.PetID, &a.Description, &a.Technician,
		&a.ScheduledAt, &a.DocumentID, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return &a, nil
}

// GetByID obtiene una cita por ID.
func (r *AppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene una cita bloqueando su fila (SELECT FOR UPDATE): dos
// cierres concurrentes no pueden facturar la misma cita dos veces.
func (r *AppointmentRepo) GetForUpdate(id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// List lista las citas, más recientes primero.
func (r *AppointmentRepo) List() ([]*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(
			&a.ID, &a.CustomerID, &a.PetID, &a.Description, &a.Technician,
			&a.ScheduledAt, &a.DocumentID, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CreateLine inserta una línea de servicio.
func (r *AppointmentRepo) CreateLine(l *entity.ServiceLine) error {
	query := `
		INSERT INTO service_lines (id, appointment_id, service_code, product_id, description, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.AppointmentID, l.ServiceCode, l.ProductID,
		nullIfEmpty(l.Description), l.Price, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service line: %w", err)
	}
	return nil
}

// UpdateLine actualiza el estado y precio de una línea de servicio.
func (r *AppointmentRepo) UpdateLine(l *entity.ServiceLine) error {
	query := `
		UPDATE service_lines SET description = $2, price = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, nullIfEmpty(l.Description), l.Price, l.Status, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service line: %w", err)
	}
	return nil
}

// GetLines devuelve las líneas de la cita en orden de creación.
func (r *AppointmentRepo) GetLines(appointmentID string) ([]*entity.ServiceLine, error) {
	query := `
		SELECT id, appointment_id, service_code, product_id, COALESCE(description, ''), price, status, created_at, updated_at
		FROM service_lines WHERE appointment_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get service lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceLine
	for rows.Next() {
		var l entity.ServiceLine
		if err := rows.Scan(
			&l.ID, &l.AppointmentID, &l.ServiceCode, &l.ProductID,
			&l.Description, &l.Price, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
