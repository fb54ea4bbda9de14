package repository

import (
	"github.com/shopspring/decimal"

	"github.com/petverde/green-pos/internal/domain/entity"
)

// CreditApplicationRepository puerto de persistencia para aplicaciones de
// notas crédito contra facturas. Append-only.
type CreditApplicationRepository interface {
	Create(a *entity.CreditApplication) error
	// SumByCreditNote devuelve el total ya consumido de una nota.
	SumByCreditNote(creditNoteID string) (decimal.Decimal, error)
	ListByCreditNote(creditNoteID string) ([]*entity.CreditApplication, error)
	ListByInvoice(invoiceID string) ([]*entity.CreditApplication, error)
}
