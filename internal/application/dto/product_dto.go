package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
// InitialStock genera el movimiento inicial de inventario (no escribe el
// saldo directamente).
type CreateProductRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	InitialStock  int64           `json:"initial_stock,omitempty"`
	StockMin      int64           `json:"stock_min,omitempty"`
	StockWarning  int64           `json:"stock_warning,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. No toca el saldo de
// existencias: eso solo lo hace el libro de inventario.
type UpdateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	StockMin      int64           `json:"stock_min,omitempty"`
	StockWarning  int64           `json:"stock_warning,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category,omitempty"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	CurrentBalance int64           `json:"current_balance"`
	StockMin       int64           `json:"stock_min"`
	StockWarning   int64           `json:"stock_warning"`
	IsService      bool            `json:"is_service"`
}
