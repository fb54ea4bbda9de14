package http

import (
	"time"

	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/application/dto"
	"github.com/petverde/green-pos/internal/application/scheduling"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/ledger"
)

// Mapeo entidad → DTO de respuesta. Las fechas salen en RFC 3339.

func toDocumentResponse(doc *entity.Document, lines []*entity.DocumentLine) *dto.DocumentResponse {
	out := &dto.DocumentResponse{
		ID:                  doc.ID,
		Kind:                doc.Kind,
		Number:              doc.Number,
		CustomerID:          doc.CustomerID,
		Date:                doc.Date.Format(time.RFC3339),
		Subtotal:            doc.Subtotal,
		Tax:                 doc.Tax,
		Discount:            doc.Discount,
		Total:               doc.Total,
		Status:              doc.Status,
		PaymentMethod:       doc.PaymentMethod,
		Notes:               doc.Notes,
		ReferenceDocumentID: doc.ReferenceDocumentID,
		Reason:              doc.Reason,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.DocumentLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	return out
}

func toDocumentResult(result *billing.DocumentResult) *dto.DocumentResponse {
	return toDocumentResponse(result.Document, result.Lines)
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		Quantity:        m.Quantity,
		Direction:       m.Direction,
		Reason:          m.Reason,
		PreviousStock:   m.PreviousStock,
		NewStock:        m.NewStock,
		IsPhysicalCount: m.IsPhysicalCount,
		Reference:       m.Reference,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
	}
}

func toKardexEntryResponse(e ledger.TimelineEntry) dto.KardexEntryResponse {
	qty := e.Quantity
	if e.Direction == entity.DirectionSubtraction {
		qty = -qty
	}
	return dto.KardexEntryResponse{
		Source:        e.Kind,
		Date:          e.At.Format(time.RFC3339),
		Description:   e.Reason,
		Quantity:      qty,
		PreviousStock: e.PreviousStock,
		NewStock:      e.NewStock,
		Reference:     e.Reference,
	}
}

func toServiceLineResponse(l *entity.ServiceLine) dto.ServiceLineResponse {
	return dto.ServiceLineResponse{
		ID:          l.ID,
		ServiceCode: l.ServiceCode,
		ProductID:   l.ProductID,
		Description: l.Description,
		Price:       l.Price,
		Status:      l.Status,
	}
}

func toAppointmentResponse(result *scheduling.AppointmentResult) *dto.AppointmentResponse {
	appt := result.Appointment
	out := &dto.AppointmentResponse{
		ID:          appt.ID,
		CustomerID:  appt.CustomerID,
		PetID:       appt.PetID,
		Description: appt.Description,
		Technician:  appt.Technician,
		Status:      result.Status,
		DocumentID:  appt.DocumentID,
		Services:    make([]dto.ServiceLineResponse, 0, len(result.Lines)),
	}
	if appt.ScheduledAt != nil {
		out.ScheduledAt = appt.ScheduledAt.Format(time.RFC3339)
	}
	for _, l := range result.Lines {
		out.Services = append(out.Services, toServiceLineResponse(l))
	}
	return out
}

func toSettlementResponse(result *billing.SettlementResult) *dto.SettlementResponse {
	out := &dto.SettlementResponse{
		Applications: make([]dto.CreditApplicationResponse, 0, len(result.Applications)),
		TotalApplied: result.TotalApplied,
		Shortfall:    result.Shortfall,
	}
	for _, app := range result.Applications {
		out.Applications = append(out.Applications, dto.CreditApplicationResponse{
			ID:            app.ID,
			CreditNoteID:  app.CreditNoteID,
			InvoiceID:     app.InvoiceID,
			AmountApplied: app.AmountApplied,
			AppliedAt:     app.AppliedAt.Format(time.RFC3339),
		})
	}
	return out
}
