package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de precio de un tipo de servicio.
const (
	PricingModeFixed    = "fixed"
	PricingModeVariable = "variable" // el precio se pacta por cita
)

// ServiceType es un tipo de servicio configurable (baño, grooming, etc.).
// ProfitPercentage (0..100) determina el costo interno del producto sintético.
type ServiceType struct {
	ID               string
	Code             string // único, mayúsculas
	Name             string
	Description      string
	PricingMode      string
	BasePrice        decimal.Decimal
	ProfitPercentage decimal.Decimal
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CalculateCost deriva el costo interno desde el precio de venta:
// costo = precio × (1 − utilidad/100).
func (st *ServiceType) CalculateCost(price decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(st.ProfitPercentage.Div(decimal.NewFromInt(100)))
	return price.Mul(factor).Round(2)
}
