package dto

import "github.com/shopspring/decimal"

// ServiceLineRequest servicio dentro de una cita. Price en cero toma el
// precio base del tipo de servicio.
type ServiceLineRequest struct {
	Code        string          `json:"code"`
	Price       decimal.Decimal `json:"price,omitempty"`
	Description string          `json:"description,omitempty"`
}

// CreateAppointmentRequest body para POST /api/appointments.
type CreateAppointmentRequest struct {
	CustomerID  string               `json:"customer_id"`
	PetID       string               `json:"pet_id,omitempty"`
	Description string               `json:"description,omitempty"`
	Technician  string               `json:"technician,omitempty"`
	ScheduledAt string               `json:"scheduled_at,omitempty"` // RFC 3339
	Services    []ServiceLineRequest `json:"services"`
}

// FinishAppointmentRequest body para POST /api/appointments/:id/finish.
type FinishAppointmentRequest struct {
	PaymentMethod string          `json:"payment_method,omitempty"`
	Discount      decimal.Decimal `json:"discount,omitempty"`
}

// ServiceLineResponse línea de servicio en respuestas.
type ServiceLineResponse struct {
	ID          string          `json:"id"`
	ServiceCode string          `json:"service_code"`
	ProductID   string          `json:"product_id"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
}

// AppointmentResponse cita con líneas y estado derivado.
type AppointmentResponse struct {
	ID          string                `json:"id"`
	CustomerID  string                `json:"customer_id"`
	PetID       string                `json:"pet_id,omitempty"`
	Description string                `json:"description,omitempty"`
	Technician  string                `json:"technician,omitempty"`
	ScheduledAt string                `json:"scheduled_at,omitempty"`
	Status      string                `json:"status"` // derivado de las líneas
	DocumentID  string                `json:"document_id,omitempty"`
	Services    []ServiceLineResponse `json:"services"`
}

// FinishAppointmentResponse resultado del cierre: la cita, la factura
// generada y si ya estaba facturada (cierre idempotente).
type FinishAppointmentResponse struct {
	Appointment   AppointmentResponse `json:"appointment"`
	Document      *DocumentResponse   `json:"document,omitempty"`
	AlreadyBilled bool                `json:"already_billed"`
}

// CreateServiceTypeRequest body para POST /api/service-types.
type CreateServiceTypeRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	PricingMode      string          `json:"pricing_mode"` // fixed | variable
	BasePrice        decimal.Decimal `json:"base_price"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
}

// UpdateServiceTypeRequest body para PUT /api/service-types/:code.
type UpdateServiceTypeRequest struct {
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	PricingMode      string          `json:"pricing_mode"`
	BasePrice        decimal.Decimal `json:"base_price"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	Active           bool            `json:"active"`
}

// ServiceTypeResponse tipo de servicio en respuestas.
type ServiceTypeResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	PricingMode      string          `json:"pricing_mode"`
	BasePrice        decimal.Decimal `json:"base_price"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	Active           bool            `json:"active"`
}
