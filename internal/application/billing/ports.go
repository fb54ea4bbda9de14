package billing

import (
	"context"
	"time"

	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios de inventario y facturación.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		customerRepo repository.CustomerRepository,
		settingRepo repository.SettingRepository,
		creditAppRepo repository.CreditApplicationRepository,
	) error) error
}

// StockLedger integra facturación con el libro de inventario.
// RecordMovementInTx aplica un movimiento usando los repositorios del caller
// (misma transacción). Si retorna error el caller debe hacer rollback.
type StockLedger interface {
	RecordMovementInTx(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		productID string,
		signedQty int64,
		reason, reference, actor string,
		isPhysicalCount bool,
		now time.Time,
	) (*entity.StockMovement, error)
}

// DocumentLineForPDF línea resuelta (nombre de producto incluido) para el
// generador de PDF.
type DocumentLineForPDF struct {
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// PDFGenerator genera la representación imprimible de un documento.
type PDFGenerator interface {
	GenerateDocumentPDF(
		doc *entity.Document,
		setting *entity.Setting,
		customer *entity.Customer,
		lines []DocumentLineForPDF,
	) ([]byte, error)
}
