package dto

import "github.com/shopspring/decimal"

// DocumentLineRequest línea de documento (producto, cantidad, precio).
// UnitPrice en cero toma el precio de venta del producto.
type DocumentLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateInvoiceRequest body para POST /api/documents/invoices.
type CreateInvoiceRequest struct {
	CustomerID    string                `json:"customer_id"`
	Lines         []DocumentLineRequest `json:"lines"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	Discount      decimal.Decimal       `json:"discount,omitempty"`
	Notes         string                `json:"notes,omitempty"`
}

// CreateCreditNoteRequest body para POST /api/documents/invoices/:id/credit-notes.
// El precio unitario de cada línea siempre es el facturado originalmente.
type CreateCreditNoteRequest struct {
	Lines  []DocumentLineRequest `json:"lines"`
	Reason string                `json:"reason"`
}

// EditDocumentRequest body para PATCH /api/documents/:id. Campos en nil se
// conservan; Reason es obligatorio y queda en la bitácora del documento.
type EditDocumentRequest struct {
	PaymentMethod *string          `json:"payment_method,omitempty"`
	Discount      *decimal.Decimal `json:"discount,omitempty"`
	Reason        string           `json:"reason"`
}

// ApplyCreditRequest body para POST /api/customers/:id/credit/apply.
type ApplyCreditRequest struct {
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// DocumentResponse factura o nota crédito con sus líneas.
type DocumentResponse struct {
	ID                  string                 `json:"id"`
	Kind                string                 `json:"kind"`
	Number              string                 `json:"number"`
	CustomerID          string                 `json:"customer_id"`
	Date                string                 `json:"date"`
	Subtotal            decimal.Decimal        `json:"subtotal"`
	Tax                 decimal.Decimal        `json:"tax"`
	Discount            decimal.Decimal        `json:"discount"`
	Total               decimal.Decimal        `json:"total"`
	Status              string                 `json:"status"`
	PaymentMethod       string                 `json:"payment_method"`
	Notes               string                 `json:"notes,omitempty"`
	ReferenceDocumentID string                 `json:"reference_document_id,omitempty"`
	Reason              string                 `json:"reason,omitempty"`
	Lines               []DocumentLineResponse `json:"lines,omitempty"`
}

// DocumentLineResponse línea en la respuesta.
type DocumentLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CreditApplicationResponse aplicación de una nota crédito contra una factura.
type CreditApplicationResponse struct {
	ID            string          `json:"id"`
	CreditNoteID  string          `json:"credit_note_id"`
	InvoiceID     string          `json:"invoice_id"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
	AppliedAt     string          `json:"applied_at"`
}

// SettlementResponse resultado de aplicar crédito: shortfall > 0 indica que
// el crédito disponible no cubrió el monto solicitado.
type SettlementResponse struct {
	Applications []CreditApplicationResponse `json:"applications"`
	TotalApplied decimal.Decimal             `json:"total_applied"`
	Shortfall    decimal.Decimal             `json:"shortfall"`
}
