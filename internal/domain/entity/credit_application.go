package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditApplication registra el consumo de parte del valor de una nota
// crédito contra una factura. Invariante: la suma de aplicaciones de una nota
// nunca supera el total de esa nota.
type CreditApplication struct {
	ID            string
	CreditNoteID  string
	InvoiceID     string
	AmountApplied decimal.Decimal
	AppliedAt     time.Time
	AppliedBy     string // UserID
}
