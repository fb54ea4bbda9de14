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

// Longitud mínima de la justificación de una nota crédito.
const minCreditNoteReasonLen = 10

// DocumentUseCase maneja el ciclo de vida de facturas y notas crédito:
// creación transaccional con descuento/restauración de inventario,
// numeración consecutiva compartida, validación, edición y borrado con
// reversos compensatorios.
type DocumentUseCase struct {
	txRunner     BillingTxRunner
	stockLedger  StockLedger
	documentRepo repository.DocumentRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	settingRepo  repository.SettingRepository
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner BillingTxRunner,
	stockLedger StockLedger,
	documentRepo repository.DocumentRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	settingRepo repository.SettingRepository,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:     txRunner,
		stockLedger:  stockLedger,
		documentRepo: documentRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		settingRepo:  settingRepo,
	}
}

// LineInput línea de entrada para crear un documento.
// UnitPrice en cero toma el precio de venta del producto.
type LineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CreateInvoiceInput entrada para crear una factura.
type CreateInvoiceInput struct {
	CustomerID    string
	Lines         []LineInput
	PaymentMethod string
	Discount      decimal.Decimal
	Notes         string
	Actor         string
}

// CreateCreditNoteInput entrada para crear una nota crédito contra una
// factura. Las líneas referencian productos de la factura original; el
// precio unitario siempre es el facturado originalmente.
type CreateCreditNoteInput struct {
	InvoiceID string
	Lines     []LineInput
	Reason    string
	Actor     string
}

// DocumentResult documento con sus líneas.
type DocumentResult struct {
	Document *entity.Document
	Lines    []*entity.DocumentLine
}

// CreateInvoice crea una factura y descuenta el inventario en una sola
// transacción. La factura nace pending.
func (uc *DocumentUseCase) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*DocumentResult, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer_id requerido", domain.ErrValidation)
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	now := time.Now()
	var result *DocumentResult
	err = uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		_ repository.CustomerRepository,
		settingRepo repository.SettingRepository,
		_ repository.CreditApplicationRepository,
	) error {
		doc, lines, err := uc.CreateInvoiceInTx(productRepo, movementRepo, documentRepo, settingRepo, in, now)
		if err != nil {
			return err
		}
		result = &DocumentResult{Document: doc, Lines: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateInvoiceInTx crea la factura usando los repositorios del caller
// (misma transacción): registra una salida de inventario por cada línea,
// asigna el consecutivo bajo bloqueo de la fila de configuración y persiste
// cabecera y líneas. Lo usa también el cierre de citas para facturar dentro
// de su propia transacción.
func (uc *DocumentUseCase) CreateInvoiceInTx(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	documentRepo repository.DocumentRepository,
	settingRepo repository.SettingRepository,
	in CreateInvoiceInput,
	now time.Time,
) (*entity.Document, []*entity.DocumentLine, error) {
	if len(in.Lines) == 0 {
		return nil, nil, fmt.Errorf("%w: la factura requiere al menos una línea", domain.ErrValidation)
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	if !entity.IsValidPaymentMethod(paymentMethod) {
		return nil, nil, fmt.Errorf("%w: método de pago %q no aceptado", domain.ErrValidation, paymentMethod)
	}
	if in.Discount.IsNegative() {
		return nil, nil, fmt.Errorf("%w: el descuento no puede ser negativo", domain.ErrValidation)
	}

	docID := uuid.New().String()
	lines := make([]*entity.DocumentLine, 0, len(in.Lines))
	subtotal := decimal.Zero

	// Por cada línea: salida de inventario referenciando la factura.
	// Cualquier error (producto inexistente, política de stock) hace rollback.
	for _, li := range in.Lines {
		if li.ProductID == "" || li.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: línea con producto o cantidad inválida", domain.ErrValidation)
		}
		if li.UnitPrice.IsNegative() {
			return nil, nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrValidation)
		}
		product, err := productRepo.GetByID(li.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if product == nil {
			return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, li.ProductID)
		}
		unitPrice := li.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.SalePrice
		}

		if _, err := uc.stockLedger.RecordMovementInTx(
			productRepo, movementRepo,
			li.ProductID, -li.Quantity,
			entity.ReasonSale, docID, in.Actor,
			false, now,
		); err != nil {
			return nil, nil, err
		}

		line := &entity.DocumentLine{
			ID:         uuid.New().String(),
			DocumentID: docID,
			ProductID:  li.ProductID,
			Quantity:   li.Quantity,
			UnitPrice:  unitPrice,
		}
		lines = append(lines, line)
		subtotal = subtotal.Add(line.Subtotal())
	}

	// Consecutivo y tasa de impuesto bajo bloqueo de la fila de configuración
	setting, err := settingRepo.GetForUpdate()
	if err != nil {
		return nil, nil, err
	}
	tax := subtotal.Mul(setting.EffectiveTaxRate()).Round(2)
	total := subtotal.Add(tax).Sub(in.Discount)
	if total.IsNegative() {
		return nil, nil, fmt.Errorf("%w: el descuento supera el valor de la factura", domain.ErrValidation)
	}

	number := fmt.Sprintf("%s-%06d", setting.InvoicePrefix, setting.NextInvoiceNumber)
	setting.NextInvoiceNumber++
	if err := settingRepo.Update(setting); err != nil {
		return nil, nil, err
	}

	doc := &entity.Document{
		ID:            docID,
		Kind:          entity.DocumentKindInvoice,
		Number:        number,
		CustomerID:    in.CustomerID,
		Date:          now,
		Subtotal:      subtotal,
		Tax:           tax,
		Discount:      in.Discount,
		Total:         total,
		Status:        entity.DocumentStatusPending,
		PaymentMethod: paymentMethod,
		Notes:         in.Notes,
		CreatedBy:     in.Actor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := documentRepo.Create(doc); err != nil {
		return nil, nil, err
	}
	for _, line := range lines {
		if err := documentRepo.CreateLine(line); err != nil {
			return nil, nil, err
		}
	}
	return doc, lines, nil
}

// CreateCreditNote crea una nota crédito contra una factura: restaura el
// inventario línea por línea, toma el consecutivo compartido y acredita el
// total al saldo a favor del cliente. Nace validated (corrige una
// transacción ya comprometida).
func (uc *DocumentUseCase) CreateCreditNote(ctx context.Context, in CreateCreditNoteInput) (*DocumentResult, error) {
	if in.InvoiceID == "" {
		return nil, fmt.Errorf("%w: invoice_id requerido", domain.ErrValidation)
	}
	if len(in.Reason) < minCreditNoteReasonLen {
		return nil, fmt.Errorf("%w: la justificación debe tener al menos %d caracteres", domain.ErrValidation, minCreditNoteReasonLen)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: la nota crédito requiere al menos una línea", domain.ErrValidation)
	}

	now := time.Now()
	var result *DocumentResult
	err := uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		customerRepo repository.CustomerRepository,
		settingRepo repository.SettingRepository,
		_ repository.CreditApplicationRepository,
	) error {
		invoice, err := documentRepo.GetByID(in.InvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, in.InvoiceID)
		}
		if invoice.Kind != entity.DocumentKindInvoice {
			return fmt.Errorf("%w: solo se emiten notas crédito contra facturas", domain.ErrValidation)
		}

		originalLines, err := documentRepo.GetLines(invoice.ID)
		if err != nil {
			return err
		}
		byProduct := make(map[string]*entity.DocumentLine, len(originalLines))
		for _, ol := range originalLines {
			byProduct[ol.ProductID] = ol
		}

		noteID := uuid.New().String()
		lines := make([]*entity.DocumentLine, 0, len(in.Lines))
		subtotal := decimal.Zero
		for _, li := range in.Lines {
			original, ok := byProduct[li.ProductID]
			if !ok {
				return fmt.Errorf("%w: el producto %s no está en la factura original", domain.ErrValidation, li.ProductID)
			}
			if li.Quantity <= 0 || li.Quantity > original.Quantity {
				return fmt.Errorf("%w: cantidad a devolver fuera del rango facturado", domain.ErrValidation)
			}

			// Restaura inventario referenciando la nota
			if _, err := uc.stockLedger.RecordMovementInTx(
				productRepo, movementRepo,
				li.ProductID, li.Quantity,
				entity.ReasonReturn, noteID, in.Actor,
				false, now,
			); err != nil {
				return err
			}

			line := &entity.DocumentLine{
				ID:         uuid.New().String(),
				DocumentID: noteID,
				ProductID:  li.ProductID,
				Quantity:   li.Quantity,
				UnitPrice:  original.UnitPrice, // siempre el precio facturado
			}
			lines = append(lines, line)
			subtotal = subtotal.Add(line.Subtotal())
		}

		setting, err := settingRepo.GetForUpdate()
		if err != nil {
			return err
		}
		tax := subtotal.Mul(setting.EffectiveTaxRate()).Round(2)
		total := subtotal.Add(tax)

		number := fmt.Sprintf("%s-%06d", setting.InvoicePrefix, setting.NextInvoiceNumber)
		setting.NextInvoiceNumber++
		if err := settingRepo.Update(setting); err != nil {
			return err
		}

		note := &entity.Document{
			ID:                  noteID,
			Kind:                entity.DocumentKindCreditNote,
			Number:              number,
			CustomerID:          invoice.CustomerID,
			Date:                now,
			Subtotal:            subtotal,
			Tax:                 tax,
			Discount:            decimal.Zero,
			Total:               total,
			Status:              entity.DocumentStatusValidated,
			PaymentMethod:       "credit_note",
			ReferenceDocumentID: invoice.ID,
			Reason:              in.Reason,
			StockRestored:       true,
			CreatedBy:           in.Actor,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := documentRepo.Create(note); err != nil {
			return err
		}
		for _, line := range lines {
			if err := documentRepo.CreateLine(line); err != nil {
				return err
			}
		}

		// Acredita el total al saldo a favor del cliente (fila bloqueada)
		customer, err := customerRepo.GetForUpdate(invoice.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, invoice.CustomerID)
		}
		if err := customerRepo.UpdateCreditBalance(customer.ID, customer.CreditBalance.Add(total)); err != nil {
			return err
		}

		result = &DocumentResult{Document: note, Lines: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EditInput cambios admitidos sobre una factura pending. Los punteros en nil
// dejan el campo como está.
type EditInput struct {
	DocumentID    string
	PaymentMethod *string
	Discount      *decimal.Decimal
	Reason        string
	Actor         string
}

// Edit modifica método de pago y/o descuento de una factura pending y deja
// constancia de cada cambio en la bitácora de notas del documento.
func (uc *DocumentUseCase) Edit(ctx context.Context, in EditInput) (*entity.Document, error) {
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: la razón de la edición es obligatoria", domain.ErrValidation)
	}
	if in.PaymentMethod == nil && in.Discount == nil {
		return nil, fmt.Errorf("%w: nada que editar", domain.ErrValidation)
	}

	now := time.Now()
	var edited *entity.Document
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		_ repository.CustomerRepository,
		_ repository.SettingRepository,
		_ repository.CreditApplicationRepository,
	) error {
		doc, err := documentRepo.GetByID(in.DocumentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, in.DocumentID)
		}
		if !doc.IsPending() {
			return fmt.Errorf("%w: solo se editan documentos pendientes", domain.ErrConflict)
		}

		var changes []string
		if in.PaymentMethod != nil && *in.PaymentMethod != doc.PaymentMethod {
			if !entity.IsValidPaymentMethod(*in.PaymentMethod) {
				return fmt.Errorf("%w: método de pago %q no aceptado", domain.ErrValidation, *in.PaymentMethod)
			}
			changes = append(changes, fmt.Sprintf("método de pago %s → %s", doc.PaymentMethod, *in.PaymentMethod))
			doc.PaymentMethod = *in.PaymentMethod
		}
		if in.Discount != nil && !in.Discount.Equal(doc.Discount) {
			if in.Discount.IsNegative() {
				return fmt.Errorf("%w: el descuento no puede ser negativo", domain.ErrValidation)
			}
			if in.Discount.GreaterThan(doc.Subtotal.Add(doc.Tax)) {
				return fmt.Errorf("%w: el descuento supera el valor de la factura", domain.ErrValidation)
			}
			changes = append(changes, fmt.Sprintf("descuento %s → %s", doc.Discount.StringFixed(2), in.Discount.StringFixed(2)))
			doc.Discount = *in.Discount
			doc.RecomputeTotal()
		}
		if len(changes) == 0 {
			edited = doc
			return nil
		}

		// Bitácora append-only de ediciones
		entry := fmt.Sprintf("[%s] %s: %s (motivo: %s)", now.Format("2006-01-02 15:04"), in.Actor, joinChanges(changes), in.Reason)
		if doc.Notes != "" {
			doc.Notes = doc.Notes + "\n" + entry
		} else {
			doc.Notes = entry
		}
		doc.UpdatedAt = now
		if err := documentRepo.Update(doc); err != nil {
			return err
		}
		edited = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

func joinChanges(changes []string) string {
	out := changes[0]
	for _, c := range changes[1:] {
		out = out + "; " + c
	}
	return out
}

// Delete elimina una factura pending registrando un reverso compensatorio de
// inventario por cada línea. El libro nunca se toca: el reverso es una
// entrada nueva.
func (uc *DocumentUseCase) Delete(ctx context.Context, documentID, actor string) error {
	now := time.Now()
	return uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		_ repository.CustomerRepository,
		_ repository.SettingRepository,
		_ repository.CreditApplicationRepository,
	) error {
		doc, err := documentRepo.GetByID(documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, documentID)
		}
		if !doc.IsPending() {
			return fmt.Errorf("%w: solo se eliminan documentos pendientes", domain.ErrConflict)
		}

		lines, err := documentRepo.GetLines(doc.ID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := uc.stockLedger.RecordMovementInTx(
				productRepo, movementRepo,
				line.ProductID, line.Quantity,
				entity.ReasonVoid, doc.ID, actor,
				false, now,
			); err != nil {
				return err
			}
		}
		return documentRepo.Delete(doc.ID)
	})
}

// Validate marca una factura pending como validated. Transición terminal:
// cierra ediciones y borrado.
func (uc *DocumentUseCase) Validate(ctx context.Context, documentID, actor string) (*entity.Document, error) {
	now := time.Now()
	var validated *entity.Document
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		_ repository.CustomerRepository,
		_ repository.SettingRepository,
		_ repository.CreditApplicationRepository,
	) error {
		doc, err := documentRepo.GetByID(documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, documentID)
		}
		if !doc.IsPending() {
			return fmt.Errorf("%w: el documento ya fue validado", domain.ErrConflict)
		}
		doc.Status = entity.DocumentStatusValidated
		doc.UpdatedAt = now
		if err := documentRepo.Update(doc); err != nil {
			return err
		}
		validated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return validated, nil
}

// Get obtiene un documento por ID con sus líneas.
func (uc *DocumentUseCase) Get(ctx context.Context, documentID string) (*DocumentResult, error) {
	doc, err := uc.documentRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: documento %s", domain.ErrNotFound, documentID)
	}
	lines, err := uc.documentRepo.GetLines(doc.ID)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{Document: doc, Lines: lines}, nil
}

// ListByCustomer lista los documentos de un cliente.
func (uc *DocumentUseCase) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Document, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, customerID)
	}
	return uc.documentRepo.ListByCustomer(customerID)
}
