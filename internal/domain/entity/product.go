package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryService agrupa los productos sintéticos que respaldan servicios de
// mascota (código SERV-*). No manejan stock físico.
const CategoryService = "Servicios"

// Product representa un producto del catálogo o un servicio sintético.
// CurrentBalance es el saldo de existencias y equivale siempre a la suma con
// signo de todos sus StockMovement; lo muta exclusivamente el motor de
// inventario (puede quedar negativo por política de backorder).
type Product struct {
	ID             string
	Code           string // código único (código de barras o SERV-{TIPO})
	Name           string
	Description    string
	Category       string
	PurchasePrice  decimal.Decimal // costo interno
	SalePrice      decimal.Decimal
	CurrentBalance int64
	StockMin       int64 // mínimo operativo
	StockWarning   int64 // umbral de alerta de reposición
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsService indica si el producto es un servicio sintético (sin stock físico).
func (p *Product) IsService() bool {
	return p.Category == CategoryService
}
