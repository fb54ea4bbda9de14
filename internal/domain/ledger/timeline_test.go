package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/ledger"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func mov(id string, at time.Time, qty int64, direction string, prev, next int64) *entity.StockMovement {
	return &entity.StockMovement{
		ID:            id,
		ProductID:     "p1",
		Quantity:      qty,
		Direction:     direction,
		Reason:        "ajuste",
		PreviousStock: prev,
		NewStock:      next,
		CreatedAt:     at,
	}
}

func sale(docNumber string, at time.Time, qty int64) ledger.SaleEntry {
	return ledger.SaleEntry{
		DocumentID:     "doc-" + docNumber,
		DocumentNumber: docNumber,
		ProductID:      "p1",
		Quantity:       qty,
		Date:           at,
	}
}

// Kardex retroactivo: una venta histórica sin snapshot intercalada entre dos
// movimientos debe recibir sus saldos del recorrido en reversa.
func TestBuildTimeline_MezclaVentasYMovimientos(t *testing.T) {
	movements := []*entity.StockMovement{
		// entrada inicial 0 → 10
		mov("m1", base, 10, entity.DirectionAddition, 0, 10),
		// reposición posterior a la venta implícita: 7 → 9
		mov("m2", base.Add(2*time.Hour), 2, entity.DirectionAddition, 7, 9),
	}
	sales := []ledger.SaleEntry{
		// venta histórica de 3 unidades entre m1 y m2 (10 → 7)
		sale("FV-000001", base.Add(time.Hour), 3),
	}

	entries, err := ledger.BuildTimeline(movements, sales, 9)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Orden cronológico ascendente
	assert.Equal(t, ledger.EntryMovement, entries[0].Kind)
	assert.Equal(t, ledger.EntrySale, entries[1].Kind)
	assert.Equal(t, ledger.EntryMovement, entries[2].Kind)

	// La venta hereda saldos resueltos: 10 → 7
	assert.Equal(t, int64(10), entries[1].PreviousStock)
	assert.Equal(t, int64(7), entries[1].NewStock)
	assert.Equal(t, "FV-000001", entries[1].Reference)

	// La cadena encadena: new_stock de cada paso = previous_stock del siguiente
	for i := 1; i < len(entries); i++ {
		assert.Equal(t, entries[i-1].NewStock, entries[i].PreviousStock,
			"el saldo debe encadenar entre pasos consecutivos")
	}
}

// Solo ventas, sin movimientos: los saldos se deducen del saldo actual.
func TestBuildTimeline_SoloVentas(t *testing.T) {
	sales := []ledger.SaleEntry{
		sale("FV-000001", base, 4),
		sale("FV-000002", base.Add(time.Hour), 1),
	}

	entries, err := ledger.BuildTimeline(nil, sales, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, int64(10), entries[0].PreviousStock)
	assert.Equal(t, int64(6), entries[0].NewStock)
	assert.Equal(t, int64(6), entries[1].PreviousStock)
	assert.Equal(t, int64(5), entries[1].NewStock)
}

// Un movimiento cuyo new_stock no cuadra con el saldo corriente debe reportar
// ErrConsistency, nunca parchearse en silencio.
func TestBuildTimeline_DesfaseRetornaErrConsistency(t *testing.T) {
	movements := []*entity.StockMovement{
		mov("m1", base, 10, entity.DirectionAddition, 0, 10),
	}

	// El saldo actual dice 8 pero el último movimiento cierra en 10.
	_, err := ledger.BuildTimeline(movements, nil, 8)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConsistency)
}

func TestBuildTimeline_VacioRetornaVacio(t *testing.T) {
	entries, err := ledger.BuildTimeline(nil, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVerifyChain_CadenaConsistente(t *testing.T) {
	movements := []*entity.StockMovement{
		mov("m1", base, 10, entity.DirectionAddition, 0, 10),
		mov("m2", base.Add(time.Hour), 3, entity.DirectionSubtraction, 10, 7),
		mov("m3", base.Add(2*time.Hour), 5, entity.DirectionAddition, 7, 12),
	}
	assert.NoError(t, ledger.VerifyChain(movements))
}

func TestVerifyChain_AritmeticaRota(t *testing.T) {
	movements := []*entity.StockMovement{
		// 10 − 3 ≠ 8
		mov("m1", base, 3, entity.DirectionSubtraction, 10, 8),
	}
	err := ledger.VerifyChain(movements)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConsistency)
}

func TestVerifyChain_HuecoEntreEslabones(t *testing.T) {
	movements := []*entity.StockMovement{
		mov("m1", base, 10, entity.DirectionAddition, 0, 10),
		// hueco: arranca en 9 pero el anterior cerró en 10
		mov("m2", base.Add(time.Hour), 2, entity.DirectionSubtraction, 9, 7),
	}
	err := ledger.VerifyChain(movements)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConsistency)
}
