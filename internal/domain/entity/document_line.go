package entity

import "github.com/shopspring/decimal"

// DocumentLine es una línea de factura o nota crédito. Inmutable una vez el
// documento queda validated.
type DocumentLine struct {
	ID         string
	DocumentID string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
}

// Subtotal devuelve qty × precio unitario.
func (l *DocumentLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
