package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento (tabla única con discriminador, como el esquema fuente).
const (
	DocumentKindInvoice    = "invoice"
	DocumentKindCreditNote = "credit_note"
)

// Estados del ciclo de vida. Las facturas nacen pending y se validan
// (terminal para ediciones y borrado); las notas crédito nacen validated
// porque corrigen una transacción ya comprometida.
const (
	DocumentStatusPending   = "pending"
	DocumentStatusValidated = "validated"
)

// Métodos de pago aceptados.
var ValidPaymentMethods = []string{"cash", "transfer", "card", "mixed", "credit_note"}

// Document representa la cabecera de una factura o nota crédito.
// Totales: Subtotal = Σ(qty×price); Tax = Subtotal×tasa (0 si no responsable
// de IVA); Total = Subtotal + Tax − Discount.
type Document struct {
	ID            string
	Kind          string
	Number        string // {prefijo}-{secuencia:06d}, consecutivo compartido
	CustomerID    string
	Date          time.Time
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	Status        string
	PaymentMethod string
	Notes         string // bitácora append-only de ediciones

	// Solo notas crédito
	ReferenceDocumentID string // factura original
	Reason              string
	StockRestored       bool

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending indica si el documento aún admite edición y borrado.
func (d *Document) IsPending() bool {
	return d.Status == DocumentStatusPending
}

// RecomputeTotal recalcula Total desde los campos almacenados.
func (d *Document) RecomputeTotal() {
	d.Total = d.Subtotal.Add(d.Tax).Sub(d.Discount)
}

// IsValidPaymentMethod valida el método contra la lista aceptada.
func IsValidPaymentMethod(method string) bool {
	for _, m := range ValidPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
