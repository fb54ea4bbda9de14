package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del negocio. CreditBalance es el saldo a
// favor acumulado por notas crédito; lo muta únicamente el motor de
// aplicación de créditos.
type Customer struct {
	ID            string
	Name          string
	Document      string // cédula / NIT, único
	Email         string
	Phone         string
	Address       string
	CreditBalance decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
