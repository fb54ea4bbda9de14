package entity

import "time"

// Estados de cita y de línea de servicio. El estado de la cita NUNCA se
// persiste como verdad independiente: es una proyección de sus líneas.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusDone      = "done"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment agrupa líneas de servicio facturables de una mascota.
// DocumentID enlaza la factura generada al finalizar (vacío si no se ha
// facturado).
type Appointment struct {
	ID          string
	CustomerID  string
	PetID       string // referencia externa (CRUD de mascotas)
	Description string
	Technician  string
	ScheduledAt *time.Time
	DocumentID  string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeStatus deriva el estado de la cita desde sus líneas:
// todas done → done; todas cancelled → cancelled; mezcla o vacío → pending.
func ComputeStatus(lines []*ServiceLine) string {
	if len(lines) == 0 {
		return AppointmentStatusPending
	}
	allDone, allCancelled := true, true
	for _, l := range lines {
		if l.Status != AppointmentStatusDone {
			allDone = false
		}
		if l.Status != AppointmentStatusCancelled {
			allCancelled = false
		}
	}
	switch {
	case allDone:
		return AppointmentStatusDone
	case allCancelled:
		return AppointmentStatusCancelled
	default:
		return AppointmentStatusPending
	}
}
