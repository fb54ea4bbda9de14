package dto

import "github.com/shopspring/decimal"

// UpdateSettingRequest body para PUT /api/settings. El consecutivo de
// documentos no es editable por esta vía.
type UpdateSettingRequest struct {
	BusinessName   string          `json:"business_name"`
	NIT            string          `json:"nit,omitempty"`
	Address        string          `json:"address,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	InvoicePrefix  string          `json:"invoice_prefix"`
	IVAResponsable bool            `json:"iva_responsable"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
}

// SettingResponse configuración del negocio en respuestas.
type SettingResponse struct {
	BusinessName      string          `json:"business_name"`
	NIT               string          `json:"nit,omitempty"`
	Address           string          `json:"address,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Email             string          `json:"email,omitempty"`
	InvoicePrefix     string          `json:"invoice_prefix"`
	NextInvoiceNumber int64           `json:"next_invoice_number"`
	IVAResponsable    bool            `json:"iva_responsable"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
}
