package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
)

// SettlementUseCase aplica el saldo a favor de un cliente (notas crédito)
// contra una factura, consumiendo las notas en orden de creación (FIFO).
type SettlementUseCase struct {
	txRunner BillingTxRunner
}

// NewSettlementUseCase construye el caso de uso.
func NewSettlementUseCase(txRunner BillingTxRunner) *SettlementUseCase {
	return &SettlementUseCase{txRunner: txRunner}
}

// ApplyCreditInput entrada para aplicar crédito a una factura.
type ApplyCreditInput struct {
	CustomerID string
	InvoiceID  string
	Amount     decimal.Decimal
	Actor      string
}

// SettlementResult resultado de la aplicación: lo aplicado por nota, el total
// cubierto y el faltante cuando el crédito disponible no alcanza (el caller
// decide cómo cobrar el resto; no es un error).
type SettlementResult struct {
	Applications []*entity.CreditApplication
	TotalApplied decimal.Decimal
	Shortfall    decimal.Decimal
}

// ApplyCredit consume notas crédito del cliente contra la factura en orden
// FIFO hasta cubrir el monto solicitado o agotar el crédito. Todo ocurre en
// una transacción con la fila del cliente bloqueada: el saldo a favor y las
// aplicaciones quedan consistentes o no cambia nada.
func (uc *SettlementUseCase) ApplyCredit(ctx context.Context, in ApplyCreditInput) (*SettlementResult, error) {
	if in.CustomerID == "" || in.InvoiceID == "" {
		return nil, fmt.Errorf("%w: customer_id e invoice_id requeridos", domain.ErrValidation)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto a aplicar debe ser positivo", domain.ErrValidation)
	}

	now := time.Now()
	var result *SettlementResult
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		customerRepo repository.CustomerRepository,
		_ repository.SettingRepository,
		creditAppRepo repository.CreditApplicationRepository,
	) error {
		invoice, err := documentRepo.GetByID(in.InvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, in.InvoiceID)
		}
		if invoice.Kind != entity.DocumentKindInvoice {
			return fmt.Errorf("%w: el crédito solo se aplica a facturas", domain.ErrValidation)
		}
		if invoice.CustomerID != in.CustomerID {
			return fmt.Errorf("%w: la factura no pertenece al cliente", domain.ErrValidation)
		}

		// Bloquea la fila del cliente: el saldo a favor se lee y muta aquí
		customer, err := customerRepo.GetForUpdate(in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}

		// Notas crédito validadas del cliente en orden de creación (FIFO)
		notes, err := documentRepo.ListCreditNotesByCustomer(in.CustomerID)
		if err != nil {
			return err
		}

		remaining := in.Amount
		applied := decimal.Zero
		var applications []*entity.CreditApplication
		for _, note := range notes {
			if !remaining.IsPositive() {
				break
			}
			consumed, err := creditAppRepo.SumByCreditNote(note.ID)
			if err != nil {
				return err
			}
			available := note.Total.Sub(consumed)
			if !available.IsPositive() {
				continue // nota agotada
			}
			chunk := decimal.Min(available, remaining)
			app := &entity.CreditApplication{
				ID:            uuid.New().String(),
				CreditNoteID:  note.ID,
				InvoiceID:     invoice.ID,
				AmountApplied: chunk,
				AppliedAt:     now,
				AppliedBy:     in.Actor,
			}
			if err := creditAppRepo.Create(app); err != nil {
				return err
			}
			applications = append(applications, app)
			applied = applied.Add(chunk)
			remaining = remaining.Sub(chunk)
		}

		if applied.IsPositive() {
			if err := customerRepo.UpdateCreditBalance(customer.ID, customer.CreditBalance.Sub(applied)); err != nil {
				return err
			}
		}
		result = &SettlementResult{
			Applications: applications,
			TotalApplied: applied,
			Shortfall:    remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
