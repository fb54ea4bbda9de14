package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/application/ledger"
	"github.com/petverde/green-pos/internal/domain/entity"
	domainledger "github.com/petverde/green-pos/internal/domain/ledger"
	"github.com/petverde/green-pos/internal/domain/repository"
	"github.com/petverde/green-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: los repos compartidos por todas las transacciones de
// facturación. El runner ejecuta los callbacks directamente (sin tx real).
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) Delete(id string) error         { delete(r.products, id); return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) UpdateBalance(id string, balance int64) error {
	if p, ok := r.products[id]; ok {
		p.CurrentBalance = balance
	}
	return nil
}
func (r *memProductRepo) List(string) ([]*entity.Product, error) { return nil, nil }

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *memMovementRepo) ListByProduct(productID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memDocumentRepo struct {
	docs  []*entity.Document
	lines []*entity.DocumentLine
}

func (r *memDocumentRepo) Create(d *entity.Document) error { r.docs = append(r.docs, d); return nil }
func (r *memDocumentRepo) CreateLine(l *entity.DocumentLine) error {
	r.lines = append(r.lines, l)
	return nil
}
func (r *memDocumentRepo) Update(d *entity.Document) error {
	for i, existing := range r.docs {
		if existing.ID == d.ID {
			r.docs[i] = d
		}
	}
	return nil
}
func (r *memDocumentRepo) Delete(id string) error {
	docs := r.docs[:0]
	for _, d := range r.docs {
		if d.ID != id {
			docs = append(docs, d)
		}
	}
	r.docs = docs
	lines := r.lines[:0]
	for _, l := range r.lines {
		if l.DocumentID != id {
			lines = append(lines, l)
		}
	}
	r.lines = lines
	return nil
}
func (r *memDocumentRepo) GetByID(id string) (*entity.Document, error) {
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}
func (r *memDocumentRepo) GetLines(documentID string) ([]*entity.DocumentLine, error) {
	var out []*entity.DocumentLine
	for _, l := range r.lines {
		if l.DocumentID == documentID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *memDocumentRepo) ListByCustomer(customerID string) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.docs {
		if d.CustomerID == customerID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *memDocumentRepo) ListCreditNotesByCustomer(customerID string) ([]*entity.Document, error) {
	// orden de inserción = orden de creación (FIFO)
	var out []*entity.Document
	for _, d := range r.docs {
		if d.CustomerID == customerID && d.Kind == entity.DocumentKindCreditNote && d.Status == entity.DocumentStatusValidated {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *memDocumentRepo) SaleEntriesByProduct(productID string) ([]domainledger.SaleEntry, error) {
	var out []domainledger.SaleEntry
	for _, d := range r.docs {
		if d.Kind != entity.DocumentKindInvoice {
			continue
		}
		for _, l := range r.lines {
			if l.DocumentID == d.ID && l.ProductID == productID {
				out = append(out, domainledger.SaleEntry{
					DocumentID:     d.ID,
					DocumentNumber: d.Number,
					ProductID:      productID,
					Quantity:       l.Quantity,
					Date:           d.Date,
				})
			}
		}
	}
	return out, nil
}

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *memCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *memCustomerRepo) UpdateCreditBalance(id string, balance decimal.Decimal) error {
	if c, ok := r.customers[id]; ok {
		c.CreditBalance = balance
	}
	return nil
}
func (r *memCustomerRepo) List(string) ([]*entity.Customer, error) { return nil, nil }

type memSettingRepo struct {
	setting *entity.Setting
}

func (r *memSettingRepo) Get() (*entity.Setting, error)          { return r.setting, nil }
func (r *memSettingRepo) GetForUpdate() (*entity.Setting, error) { return r.setting, nil }
func (r *memSettingRepo) Update(s *entity.Setting) error         { r.setting = s; return nil }

type memCreditAppRepo struct {
	apps []*entity.CreditApplication
}

func (r *memCreditAppRepo) Create(a *entity.CreditApplication) error {
	r.apps = append(r.apps, a)
	return nil
}
func (r *memCreditAppRepo) SumByCreditNote(creditNoteID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, a := range r.apps {
		if a.CreditNoteID == creditNoteID {
			sum = sum.Add(a.AmountApplied)
		}
	}
	return sum, nil
}
func (r *memCreditAppRepo) ListByCreditNote(creditNoteID string) ([]*entity.CreditApplication, error) {
	var out []*entity.CreditApplication
	for _, a := range r.apps {
		if a.CreditNoteID == creditNoteID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *memCreditAppRepo) ListByInvoice(invoiceID string) ([]*entity.CreditApplication, error) {
	var out []*entity.CreditApplication
	for _, a := range r.apps {
		if a.InvoiceID == invoiceID {
			out = append(out, a)
		}
	}
	return out, nil
}

// memRunner implementa ledger.TxRunner y billing.BillingTxRunner sobre los
// mismos repos en memoria.
type memRunner struct {
	products   *memProductRepo
	movements  *memMovementRepo
	documents  *memDocumentRepo
	customers  *memCustomerRepo
	settings   *memSettingRepo
	creditApps *memCreditAppRepo
}

func (r *memRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(r.products, r.movements)
}

func (r *memRunner) RunBilling(_ context.Context, fn func(
	repository.ProductRepository,
	repository.StockMovementRepository,
	repository.DocumentRepository,
	repository.CustomerRepository,
	repository.SettingRepository,
	repository.CreditApplicationRepository,
) error) error {
	return fn(r.products, r.movements, r.documents, r.customers, r.settings, r.creditApps)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de facturación listo para usar en los tests
// ──────────────────────────────────────────────────────────────────────────────

type billingEnv struct {
	runner     *memRunner
	documents  *billing.DocumentUseCase
	settlement *billing.SettlementUseCase
}

func newBillingEnv(t *testing.T) *billingEnv {
	t.Helper()
	runner := &memRunner{
		products:   &memProductRepo{products: make(map[string]*entity.Product)},
		movements:  &memMovementRepo{},
		documents:  &memDocumentRepo{},
		customers:  &memCustomerRepo{customers: make(map[string]*entity.Customer)},
		settings:   &memSettingRepo{},
		creditApps: &memCreditAppRepo{},
	}
	runner.settings.setting = &entity.Setting{
		ID:                1,
		BusinessName:      "PET VERDE",
		InvoicePrefix:     "FV",
		NextInvoiceNumber: 1,
		IVAResponsable:    false,
		TaxRate:           decimal.NewFromFloat(0.19),
		UpdatedAt:         time.Now(),
	}

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	ledgerUC := ledger.NewUseCase(runner, runner.products, runner.movements, ledger.Policy{}, log)
	documents := billing.NewDocumentUseCase(runner, ledgerUC, runner.documents, runner.customers, runner.products, runner.settings)
	settlement := billing.NewSettlementUseCase(runner)
	return &billingEnv{runner: runner, documents: documents, settlement: settlement}
}

func (e *billingEnv) addProduct(id, code string, price int64, balance int64) *entity.Product {
	p := &entity.Product{
		ID:             id,
		Code:           code,
		Name:           "Producto " + code,
		SalePrice:      decimal.NewFromInt(price),
		CurrentBalance: balance,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	e.runner.products.products[id] = p
	return p
}

func (e *billingEnv) addCustomer(id, name string) *entity.Customer {
	c := &entity.Customer{
		ID:            id,
		Name:          name,
		Document:      "900" + id,
		CreditBalance: decimal.Zero,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	e.runner.customers.customers[id] = c
	return c
}
