package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petverde/green-pos/internal/application/reporting"
	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/ledger"
)

type stubProductRepo struct {
	product *entity.Product
}

func (r *stubProductRepo) Create(*entity.Product) error { return nil }
func (r *stubProductRepo) Update(*entity.Product) error { return nil }
func (r *stubProductRepo) Delete(string) error          { return nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.product != nil && r.product.ID == id {
		return r.product, nil
	}
	return nil, nil
}
func (r *stubProductRepo) GetByCode(string) (*entity.Product, error)    { return nil, nil }
func (r *stubProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) UpdateBalance(string, int64) error            { return nil }
func (r *stubProductRepo) List(string) ([]*entity.Product, error)       { return nil, nil }

type stubMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *stubMovementRepo) Create(*entity.StockMovement) error { return nil }
func (r *stubMovementRepo) ListByProduct(string) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

type stubDocumentRepo struct {
	sales []ledger.SaleEntry
}

func (r *stubDocumentRepo) Create(*entity.Document) error                  { return nil }
func (r *stubDocumentRepo) CreateLine(*entity.DocumentLine) error          { return nil }
func (r *stubDocumentRepo) Update(*entity.Document) error                  { return nil }
func (r *stubDocumentRepo) Delete(string) error                            { return nil }
func (r *stubDocumentRepo) GetByID(string) (*entity.Document, error)       { return nil, nil }
func (r *stubDocumentRepo) GetLines(string) ([]*entity.DocumentLine, error) {
	return nil, nil
}
func (r *stubDocumentRepo) ListByCustomer(string) ([]*entity.Document, error) { return nil, nil }
func (r *stubDocumentRepo) ListCreditNotesByCustomer(string) ([]*entity.Document, error) {
	return nil, nil
}
func (r *stubDocumentRepo) SaleEntriesByProduct(string) ([]ledger.SaleEntry, error) {
	return r.sales, nil
}

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// Una venta que ya dejó movimiento en el libro (referencia al documento) no
// debe entrar como deducción sintética: solo la venta histórica sin
// movimiento se intercala.
func TestKardex_ExcluyeVentasCubiertasPorElLibro(t *testing.T) {
	product := &entity.Product{
		ID:             "p1",
		Code:           "ALM-001",
		Name:           "Alimento premium 2kg",
		SalePrice:      decimal.NewFromInt(25000),
		CurrentBalance: 5,
	}
	movements := []*entity.StockMovement{
		{
			ID: "m1", ProductID: "p1", Quantity: 10,
			Direction: entity.DirectionAddition, Reason: "compra proveedor",
			PreviousStock: 0, NewStock: 10, CreatedAt: base,
		},
		// venta de la era del libro: ya dejó asiento con referencia
		{
			ID: "m2", ProductID: "p1", Quantity: 2,
			Direction: entity.DirectionSubtraction, Reason: "Venta",
			Reference: "doc-nuevo", PreviousStock: 7, NewStock: 5,
			CreatedAt: base.Add(2 * time.Hour),
		},
	}
	sales := []ledger.SaleEntry{
		// venta histórica anterior al libro: sin movimiento asociado
		{DocumentID: "doc-historico", DocumentNumber: "FV-000001", ProductID: "p1", Quantity: 3, Date: base.Add(time.Hour)},
		// la misma venta que ya está cubierta por m2
		{DocumentID: "doc-nuevo", DocumentNumber: "FV-000002", ProductID: "p1", Quantity: 2, Date: base.Add(2 * time.Hour)},
	}

	uc := reporting.NewKardexUseCase(
		&stubProductRepo{product: product},
		&stubMovementRepo{movements: movements},
		&stubDocumentRepo{sales: sales},
	)
	result, err := uc.Kardex(context.Background(), "p1")
	require.NoError(t, err)

	// tres pasos, no cuatro: la venta cubierta no se duplica
	require.Len(t, result.Entries, 3)
	assert.Equal(t, ledger.EntryMovement, result.Entries[0].Kind)
	assert.Equal(t, ledger.EntrySale, result.Entries[1].Kind)
	assert.Equal(t, ledger.EntryMovement, result.Entries[2].Kind)

	// la venta histórica recibe sus saldos del recorrido en reversa: 10 → 7
	assert.Equal(t, "FV-000001", result.Entries[1].Reference)
	assert.Equal(t, int64(10), result.Entries[1].PreviousStock)
	assert.Equal(t, int64(7), result.Entries[1].NewStock)
}

func TestKardex_ProductoInexistente(t *testing.T) {
	uc := reporting.NewKardexUseCase(&stubProductRepo{}, &stubMovementRepo{}, &stubDocumentRepo{})
	_, err := uc.Kardex(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKardex_DesfaseReportaInconsistencia(t *testing.T) {
	product := &entity.Product{ID: "p1", Code: "ALM-001", CurrentBalance: 8}
	movements := []*entity.StockMovement{
		{
			ID: "m1", ProductID: "p1", Quantity: 10,
			Direction: entity.DirectionAddition, Reason: "compra proveedor",
			PreviousStock: 0, NewStock: 10, CreatedAt: base,
		},
	}

	uc := reporting.NewKardexUseCase(
		&stubProductRepo{product: product},
		&stubMovementRepo{movements: movements},
		&stubDocumentRepo{},
	)
	_, err := uc.Kardex(context.Background(), "p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConsistency)
}
