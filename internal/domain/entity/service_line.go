package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceLine es un servicio individual dentro de una cita, respaldado por un
// producto sintético SERV-{CODE} para fluir por la misma maquinaria de
// documentos e inventario que los bienes físicos.
type ServiceLine struct {
	ID            string
	AppointmentID string
	ServiceCode   string // código del ServiceType
	ProductID     string // producto sintético asociado
	Description   string
	Price         decimal.Decimal
	Status        string // pending, done, cancelled
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
