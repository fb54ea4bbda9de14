package repository

import "github.com/petverde/green-pos/internal/domain/entity"

// AppointmentRepository puerto de persistencia para citas y sus líneas de
// servicio. GetForUpdate bloquea la cita: dos Finish concurrentes no pueden
// facturar la misma cita dos veces.
type AppointmentRepository interface {
	Create(a *entity.Appointment) error
	Update(a *entity.Appointment) error
	GetByID(id string) (*entity.Appointment, error)
	GetForUpdate(id string) (*entity.Appointment, error)
	List() ([]*entity.Appointment, error)

	CreateLine(l *entity.ServiceLine) error
	UpdateLine(l *entity.ServiceLine) error
	GetLines(appointmentID string) ([]*entity.ServiceLine, error)
}
