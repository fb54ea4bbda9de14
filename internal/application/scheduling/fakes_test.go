package scheduling_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/application/ledger"
	"github.com/petverde/green-pos/internal/application/scheduling"
	"github.com/petverde/green-pos/internal/domain/entity"
	domainledger "github.com/petverde/green-pos/internal/domain/ledger"
	"github.com/petverde/green-pos/internal/domain/repository"
	"github.com/petverde/green-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El runner ejecuta los callbacks directamente (sin tx
// real) y sirve a la vez a inventario, facturación y citas.
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
	var out []*entity.Document
	for _, d := range r.docs {
		if d.CustomerID == customerID && d.Kind == entity.DocumentKindCreditNote && d.Status == entity.DocumentStatusValidated {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *memDocumentRepo) SaleEntriesByProduct(string) ([]domainledger.SaleEntry, error) {
	return nil, nil
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
func (r *memCreditAppRepo) SumByCreditNote(string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *memCreditAppRepo) ListByCreditNote(string) ([]*entity.CreditApplication, error) {
	return nil, nil
}
func (r *memCreditAppRepo) ListByInvoice(string) ([]*entity.CreditApplication, error) {
	return nil, nil
}

type memAppointmentRepo struct {
	appointments map[string]*entity.Appointment
	lines        []*entity.ServiceLine
}

func (r *memAppointmentRepo) Create(a *entity.Appointment) error {
	r.appointments[a.ID] = a
	return nil
}
func (r *memAppointmentRepo) Update(a *entity.Appointment) error {
	r.appointments[a.ID] = a
	return nil
}
func (r *memAppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	return r.appointments[id], nil
}
func (r *memAppointmentRepo) GetForUpdate(id string) (*entity.Appointment, error) {
	return r.appointments[id], nil
}
func (r *memAppointmentRepo) List() ([]*entity.Appointment, error) {
	out := make([]*entity.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		out = append(out, a)
	}
	return out, nil
}
func (r *memAppointmentRepo) CreateLine(l *entity.ServiceLine) error {
	r.lines = append(r.lines, l)
	return nil
}
func (r *memAppointmentRepo) UpdateLine(l *entity.ServiceLine) error {
	for i, existing := range r.lines {
		if existing.ID == l.ID {
			r.lines[i] = l
		}
	}
	return nil
}
func (r *memAppointmentRepo) GetLines(appointmentID string) ([]*entity.ServiceLine, error) {
	var out []*entity.ServiceLine
	for _, l := range r.lines {
		if l.AppointmentID == appointmentID {
			out = append(out, l)
		}
	}
	return out, nil
}

type memServiceTypeRepo struct {
	types map[string]*entity.ServiceType
}

func (r *memServiceTypeRepo) Create(st *entity.ServiceType) error {
	r.types[st.Code] = st
	return nil
}
func (r *memServiceTypeRepo) Update(st *entity.ServiceType) error {
	r.types[st.Code] = st
	return nil
}
func (r *memServiceTypeRepo) GetByCode(code string) (*entity.ServiceType, error) {
	return r.types[code], nil
}
func (r *memServiceTypeRepo) List(activeOnly bool) ([]*entity.ServiceType, error) {
	var out []*entity.ServiceType
	for _, st := range r.types {
		if activeOnly && !st.Active {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

// memRunner implementa ledger.TxRunner, billing.BillingTxRunner y
// scheduling.SchedulingTxRunner sobre los mismos repos en memoria.
type memRunner struct {
	products     *memProductRepo
	movements    *memMovementRepo
	documents    *memDocumentRepo
	customers    *memCustomerRepo
	settings     *memSettingRepo
	creditApps   *memCreditAppRepo
	appointments *memAppointmentRepo
	serviceTypes *memServiceTypeRepo
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

func (r *memRunner) RunScheduling(_ context.Context, fn func(
	repository.ProductRepository,
	repository.StockMovementRepository,
	repository.DocumentRepository,
	repository.SettingRepository,
	repository.AppointmentRepository,
	repository.ServiceTypeRepository,
) error) error {
	return fn(r.products, r.movements, r.documents, r.settings, r.appointments, r.serviceTypes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de citas listo para usar: caso de uso real de citas cableado al
// caso de uso real de documentos y al libro de inventario real.
// ──────────────────────────────────────────────────────────────────────────────

type schedulingEnv struct {
	runner       *memRunner
	appointments *scheduling.UseCase
	serviceTypes *scheduling.ServiceTypeUseCase
}

func newSchedulingEnv(t *testing.T) *schedulingEnv {
	t.Helper()
	runner := &memRunner{
		products:     &memProductRepo{products: make(map[string]*entity.Product)},
		movements:    &memMovementRepo{},
		documents:    &memDocumentRepo{},
		customers:    &memCustomerRepo{customers: make(map[string]*entity.Customer)},
		settings:     &memSettingRepo{},
		creditApps:   &memCreditAppRepo{},
		appointments: &memAppointmentRepo{appointments: make(map[string]*entity.Appointment)},
		serviceTypes: &memServiceTypeRepo{types: make(map[string]*entity.ServiceType)},
	}
	runner.settings.setting = &entity.Setting{
		ID:                1,
		BusinessName:      "PET VERDE",
		InvoicePrefix:     "FV",
		NextInvoiceNumber: 1,
		TaxRate:           decimal.NewFromFloat(0.19),
		UpdatedAt:         time.Now(),
	}

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	ledgerUC := ledger.NewUseCase(runner, runner.products, runner.movements, ledger.Policy{}, log)
	documents := billing.NewDocumentUseCase(runner, ledgerUC, runner.documents, runner.customers, runner.products, runner.settings)
	appointments := scheduling.NewUseCase(runner, documents, runner.appointments, runner.serviceTypes, runner.customers, runner.documents)
	serviceTypes := scheduling.NewServiceTypeUseCase(runner.serviceTypes)
	return &schedulingEnv{runner: runner, appointments: appointments, serviceTypes: serviceTypes}
}

func (e *schedulingEnv) addCustomer(id, name string) *entity.Customer {
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

func (e *schedulingEnv) addServiceType(code, mode string, basePrice, profit int64) *entity.ServiceType {
	st := &entity.ServiceType{
		ID:               uuid.New().String(),
		Code:             code,
		Name:             "Servicio " + code,
		PricingMode:      mode,
		BasePrice:        decimal.NewFromInt(basePrice),
		ProfitPercentage: decimal.NewFromInt(profit),
		Active:           true,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	e.runner.serviceTypes.types[code] = st
	return st
}
