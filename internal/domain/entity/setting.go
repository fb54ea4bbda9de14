package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Setting es la fila única de configuración del negocio. NextInvoiceNumber es
// el consecutivo compartido entre facturas y notas crédito; solo se
// incrementa bajo bloqueo de fila dentro de la transacción que crea el
// documento.
type Setting struct {
	ID                int32 // siempre 1
	BusinessName      string
	NIT               string
	Address           string
	Phone             string
	Email             string
	InvoicePrefix     string
	NextInvoiceNumber int64
	IVAResponsable    bool
	TaxRate           decimal.Decimal // ej. 0.19
	UpdatedAt         time.Time
}

// EffectiveTaxRate devuelve la tasa aplicable (0 si no es responsable de IVA).
func (s *Setting) EffectiveTaxRate() decimal.Decimal {
	if !s.IVAResponsable {
		return decimal.Zero
	}
	return s.TaxRate
}
