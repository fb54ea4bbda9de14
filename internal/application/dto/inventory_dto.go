package dto

// MovementRequest body para POST /api/inventory/movements.
// Quantity lleva signo: positivo entra, negativo sale.
type MovementRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
	Reference string `json:"reference,omitempty"`
}

// CountRequest body para POST /api/inventory/counts (conteo físico).
type CountRequest struct {
	ProductID    string `json:"product_id"`
	CountedStock int64  `json:"counted_stock"`
	Notes        string `json:"notes,omitempty"`
}

// MovementResponse entrada del libro de inventario en respuestas.
type MovementResponse struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	Quantity        int64  `json:"quantity"`
	Direction       string `json:"direction"`
	Reason          string `json:"reason"`
	PreviousStock   int64  `json:"previous_stock"`
	NewStock        int64  `json:"new_stock"`
	IsPhysicalCount bool   `json:"is_physical_count"`
	Reference       string `json:"reference,omitempty"`
	CreatedBy       string `json:"created_by"`
	CreatedAt       string `json:"created_at"`
}

// KardexEntryResponse entrada del kardex retroactivo: movimientos del libro
// y ventas anteriores al libro mezclados en una sola línea de tiempo.
type KardexEntryResponse struct {
	Source        string `json:"source"` // movement | sale
	Date          string `json:"date"`
	Description   string `json:"description"`
	Quantity      int64  `json:"quantity"` // con signo
	PreviousStock int64  `json:"previous_stock"`
	NewStock      int64  `json:"new_stock"`
	Reference     string `json:"reference,omitempty"`
}
