package entity

import "time"

// Direcciones de movimiento de inventario.
const (
	DirectionAddition    = "addition"    // entrada
	DirectionSubtraction = "subtraction" // salida
)

// Razones estándar generadas por el sistema (la razón es texto libre para
// ajustes manuales).
const (
	ReasonSale          = "sale"           // venta (línea de factura)
	ReasonReturn        = "return"         // devolución por nota crédito
	ReasonVoid          = "void"           // reverso por eliminación de documento
	ReasonPhysicalCount = "physical_count" // conteo físico
)

// StockMovement es una entrada del libro de inventario: append-only, nunca se
// edita ni se borra. Invariante: NewStock = PreviousStock ± Quantity, y
// PreviousStock debe coincidir con el saldo del producto al momento del
// insert (cadena monótona, sin huecos).
type StockMovement struct {
	ID              string
	ProductID       string
	Quantity        int64 // sin signo; Direction da el sentido
	Direction       string
	Reason          string
	PreviousStock   int64
	NewStock        int64
	IsPhysicalCount bool
	Reference       string // ID del documento que originó el movimiento (vacío en ajustes manuales)
	CreatedBy       string // UserID (actor de auditoría)
	CreatedAt       time.Time
}

// Signed devuelve la cantidad con signo según la dirección.
func (m *StockMovement) Signed() int64 {
	if m.Direction == DirectionSubtraction {
		return -m.Quantity
	}
	return m.Quantity
}
