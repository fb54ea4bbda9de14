package ledger_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petverde/green-pos/internal/application/ledger"
	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
	"github.com/petverde/green-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*entity.Product)}
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
func (r *memProductRepo) List(query string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

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

// memTxRunner ejecuta el callback directamente sobre los repos en memoria.
type memTxRunner struct {
	products  *memProductRepo
	movements *memMovementRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(r.products, r.movements)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func buildLedger(t *testing.T, policy ledger.Policy) (*ledger.UseCase, *memProductRepo, *memMovementRepo) {
	t.Helper()
	products := newMemProductRepo()
	movements := &memMovementRepo{}
	runner := &memTxRunner{products: products, movements: movements}
	return ledger.NewUseCase(runner, products, movements, policy, testLogger()), products, movements
}

func seedProduct(repo *memProductRepo, id string, balance int64) *entity.Product {
	p := &entity.Product{
		ID:             id,
		Code:           "ALM-001",
		Name:           "Alimento premium 2kg",
		SalePrice:      decimal.NewFromInt(25000),
		CurrentBalance: balance,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	repo.products[id] = p
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_SalidaActualizaSaldoYSnapshot(t *testing.T) {
	uc, products, movements := buildLedger(t, ledger.Policy{})
	seedProduct(products, "p1", 10)

	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Quantity:  -3,
		Reason:    "ajuste por daño",
		Actor:     "laura",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DirectionSubtraction, mov.Direction)
	assert.Equal(t, int64(3), mov.Quantity, "la cantidad se guarda sin signo")
	assert.Equal(t, int64(10), mov.PreviousStock)
	assert.Equal(t, int64(7), mov.NewStock)
	assert.Equal(t, int64(7), products.products["p1"].CurrentBalance,
		"el saldo del producto debe quedar igual al new_stock del movimiento")
	assert.Len(t, movements.movements, 1)
}

func TestRecordMovement_EntradaPositiva(t *testing.T) {
	uc, products, _ := buildLedger(t, ledger.Policy{})
	seedProduct(products, "p1", 2)

	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Quantity:  8,
		Reason:    "compra proveedor",
		Actor:     "laura",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionAddition, mov.Direction)
	assert.Equal(t, int64(10), mov.NewStock)
}

func TestRecordMovement_CantidadCeroRechazada(t *testing.T) {
	uc, products, _ := buildLedger(t, ledger.Policy{})
	seedProduct(products, "p1", 5)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Quantity:  0,
		Reason:    "nada",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	uc, _, _ := buildLedger(t, ledger.Policy{})

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "nope",
		Quantity:  1,
		Reason:    "ajuste",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Política por defecto: el saldo puede quedar negativo (backorder permitido).
func TestRecordMovement_BackorderPermitidoPorDefecto(t *testing.T) {
	uc, products, _ := buildLedger(t, ledger.Policy{BlockNegative: false})
	seedProduct(products, "p1", 5)

	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Quantity:  -8,
		Reason:    "venta mostrador",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-3), mov.NewStock)
	assert.Equal(t, int64(-3), products.products["p1"].CurrentBalance)
}

// Con BlockNegative la salida que dejaría saldo negativo se rechaza y no se
// escribe nada.
func TestRecordMovement_PoliticaBloqueaNegativo(t *testing.T) {
	uc, products, movements := buildLedger(t, ledger.Policy{BlockNegative: true})
	seedProduct(products, "p1", 5)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Quantity:  -8,
		Reason:    "venta mostrador",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, movements.movements, "no debe quedar entrada en el libro")
	assert.Equal(t, int64(5), products.products["p1"].CurrentBalance, "el saldo no debe cambiar")
}

// Los servicios sintéticos no manejan stock físico: el bloqueo no aplica.
func TestRecordMovement_ServicioIgnoraPolitica(t *testing.T) {
	uc, products, _ := buildLedger(t, ledger.Policy{BlockNegative: true})
	p := seedProduct(products, "svc1", 0)
	p.Code = "SERV-BATH"
	p.Category = entity.CategoryService

	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "svc1",
		Quantity:  -1,
		Reason:    "venta de servicio",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), mov.NewStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordCount — conteo físico
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordCount_AjustaDiferencia(t *testing.T) {
	uc, products, _ := buildLedger(t, ledger.Policy{})
	seedProduct(products, "p1", 10)

	mov, err := uc.RecordCount(context.Background(), ledger.CountInput{
		ProductID:    "p1",
		CountedStock: 7,
		Actor:        "laura",
	})
	require.NoError(t, err)

	assert.True(t, mov.IsPhysicalCount)
	assert.Equal(t, entity.DirectionSubtraction, mov.Direction)
	assert.Equal(t, int64(3), mov.Quantity)
	assert.Equal(t, int64(7), mov.NewStock)
	assert.True(t, strings.Contains(mov.Reason, "Conteo físico"),
		"la razón debe documentar el conteo: %q", mov.Reason)
	assert.Equal(t, int64(7), products.products["p1"].CurrentBalance)
}

// Sin diferencia igualmente queda constancia: entrada de cantidad cero.
func TestRecordCount_SinDiferenciaEscribeConstancia(t *testing.T) {
	uc, products, movements := buildLedger(t, ledger.Policy{})
	seedProduct(products, "p1", 10)

	mov, err := uc.RecordCount(context.Background(), ledger.CountInput{
		ProductID:    "p1",
		CountedStock: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), mov.Quantity)
	assert.True(t, mov.IsPhysicalCount)
	assert.Len(t, movements.movements, 1)
	assert.Equal(t, int64(10), products.products["p1"].CurrentBalance)
}

func TestRecordCount_ConteoNegativoRechazado(t *testing.T) {
	uc, products, _ := buildLedger(t, ledger.Policy{})
	seedProduct(products, "p1", 10)

	_, err := uc.RecordCount(context.Background(), ledger.CountInput{
		ProductID:    "p1",
		CountedStock: -1,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// VerifyHistory
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyHistory_CadenaGeneradaEsConsistente(t *testing.T) {
	uc, products, _ := buildLedger(t, ledger.Policy{})
	seedProduct(products, "p1", 0)

	ctx := context.Background()
	for _, qty := range []int64{10, -3, 5, -7} {
		_, err := uc.RecordMovement(ctx, ledger.MovementInput{
			ProductID: "p1",
			Quantity:  qty,
			Reason:    "ajuste",
		})
		require.NoError(t, err)
	}

	assert.NoError(t, uc.VerifyHistory(ctx, "p1"))
	assert.Equal(t, int64(5), products.products["p1"].CurrentBalance)
}
