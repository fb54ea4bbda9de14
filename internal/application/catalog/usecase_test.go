package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petverde/green-pos/internal/application/catalog"
	"github.com/petverde/green-pos/internal/application/dto"
	ledgeruc "github.com/petverde/green-pos/internal/application/ledger"
	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
)

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

// stubLedger registra las entradas pedidas al libro sin persistir nada.
type stubLedger struct {
	inputs []ledgeruc.MovementInput
}

func (l *stubLedger) RecordMovement(_ context.Context, in ledgeruc.MovementInput) (*entity.StockMovement, error) {
	l.inputs = append(l.inputs, in)
	return &entity.StockMovement{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Direction: entity.DirectionAddition,
		NewStock:  in.Quantity,
	}, nil
}

func buildCatalog() (*catalog.UseCase, *memProductRepo, *stubLedger) {
	repo := &memProductRepo{products: make(map[string]*entity.Product)}
	ledger := &stubLedger{}
	return catalog.NewUseCase(repo, ledger), repo, ledger
}

// El stock inicial se asienta como movimiento de entrada, nunca como
// escritura directa del saldo.
func TestProductCreate_StockInicialPasaPorElLibro(t *testing.T) {
	uc, _, ledger := buildCatalog()

	product, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code:         "ALM-001",
		Name:         "Alimento premium 2kg",
		SalePrice:    decimal.NewFromInt(25000),
		InitialStock: 12,
	}, "laura")
	require.NoError(t, err)

	require.Len(t, ledger.inputs, 1)
	assert.Equal(t, int64(12), ledger.inputs[0].Quantity)
	assert.Equal(t, "laura", ledger.inputs[0].Actor)
	assert.Equal(t, int64(12), product.CurrentBalance)
}

func TestProductCreate_SinStockInicialNoAsienta(t *testing.T) {
	uc, _, ledger := buildCatalog()

	product, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code:      "JUG-001",
		Name:      "Pelota mordedora",
		SalePrice: decimal.NewFromInt(8000),
	}, "laura")
	require.NoError(t, err)
	assert.Empty(t, ledger.inputs)
	assert.Equal(t, int64(0), product.CurrentBalance)
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	uc, _, _ := buildCatalog()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "ALM-001", Name: "Alimento"}, "laura")
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "ALM-001", Name: "Otro alimento"}, "laura")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_StockInicialNegativo(t *testing.T) {
	uc, _, _ := buildCatalog()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code:         "ALM-001",
		Name:         "Alimento",
		InitialStock: -5,
	}, "laura")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc, _, _ := buildCatalog()
	err := uc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
