package scheduling

import (
	"context"
	"time"

	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
)

// SchedulingTxRunner ejecuta una función dentro de una transacción que
// incluye los repositorios de citas, facturación e inventario: el cierre de
// una cita factura y descuenta servicios en una sola transacción.
type SchedulingTxRunner interface {
	RunScheduling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		settingRepo repository.SettingRepository,
		appointmentRepo repository.AppointmentRepository,
		serviceTypeRepo repository.ServiceTypeRepository,
	) error) error
}

// DocumentStore crea la factura de la cita usando los repositorios del
// caller (misma transacción). Si retorna error el caller hace rollback.
type DocumentStore interface {
	CreateInvoiceInTx(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		settingRepo repository.SettingRepository,
		in billing.CreateInvoiceInput,
		now time.Time,
	) (*entity.Document, []*entity.DocumentLine, error)
}
