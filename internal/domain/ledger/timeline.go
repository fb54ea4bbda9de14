// Package ledger contiene la lógica pura del libro de inventario: la
// verificación de la cadena de movimientos y la reconstrucción retroactiva
// del kardex. Son funciones sobre entradas inmutables que producen vistas
// derivadas; jamás escriben sobre las fuentes.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
)

// Tipos de entrada de la línea de tiempo.
const (
	EntryMovement = "movement" // StockMovement con snapshots propios
	EntrySale     = "sale"     // línea de venta sin snapshot
)

// SaleEntry es una deducción implícita de stock: una línea de factura que
// descontó existencias sin dejar snapshot de saldo.
type SaleEntry struct {
	DocumentID     string
	DocumentNumber string
	ProductID      string
	Quantity       int64
	Date           time.Time
}

// TimelineEntry es un paso del kardex reconstruido, con los saldos
// antes/después resueltos para ambas fuentes.
type TimelineEntry struct {
	Kind            string
	At              time.Time
	Quantity        int64
	Direction       string
	Reason          string
	Reference       string // ID del movimiento o número del documento
	PreviousStock   int64
	NewStock        int64
	IsPhysicalCount bool
}

// BuildTimeline mezcla los movimientos (con snapshot) y las ventas (sin
// snapshot) en una sola línea de tiempo cronológicamente consistente.
//
// Algoritmo: ordenar ascendente por fecha y recorrer EN REVERSA partiendo del
// saldo actual del producto; un movimiento adopta su previous_stock
// almacenado como saldo corriente hacia atrás; una venta recibe
// new_stock = saldo corriente y previous_stock = corriente + cantidad.
// Garantía: el new_stock de cada paso iguala el previous_stock del paso
// anterior (más antiguo) y la cadena reproduce el saldo actual en el evento
// más reciente; cualquier desfase se reporta como ErrConsistency, nunca se
// parcha en silencio.
func BuildTimeline(movements []*entity.StockMovement, sales []SaleEntry, currentBalance int64) ([]TimelineEntry, error) {
	entries := make([]TimelineEntry, 0, len(movements)+len(sales))
	for _, m := range movements {
		entries = append(entries, TimelineEntry{
			Kind:            EntryMovement,
			At:              m.CreatedAt,
			Quantity:        m.Quantity,
			Direction:       m.Direction,
			Reason:          m.Reason,
			Reference:       m.ID,
			PreviousStock:   m.PreviousStock,
			NewStock:        m.NewStock,
			IsPhysicalCount: m.IsPhysicalCount,
		})
	}
	for _, s := range sales {
		entries = append(entries, TimelineEntry{
			Kind:      EntrySale,
			At:        s.Date,
			Quantity:  s.Quantity,
			Direction: entity.DirectionSubtraction,
			Reason:    entity.ReasonSale,
			Reference: s.DocumentNumber,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.Before(entries[j].At)
	})

	// Recorrido en reversa desde el saldo autoritativo actual.
	running := currentBalance
	for i := len(entries) - 1; i >= 0; i-- {
		e := &entries[i]
		switch e.Kind {
		case EntryMovement:
			if e.NewStock != running {
				return nil, fmt.Errorf("%w: movimiento %s cierra en %d pero el saldo corriente es %d",
					domain.ErrConsistency, e.Reference, e.NewStock, running)
			}
			running = e.PreviousStock
		case EntrySale:
			e.NewStock = running
			e.PreviousStock = running + e.Quantity
			running = e.PreviousStock
		}
	}
	return entries, nil
}

// VerifyChain comprueba que la cadena de movimientos de un producto no tiene
// huecos: cada NewStock debe cumplir PreviousStock ± Quantity, y el
// PreviousStock de cada eslabón debe igualar el NewStock del anterior.
func VerifyChain(movements []*entity.StockMovement) error {
	for i, m := range movements {
		if m.NewStock != m.PreviousStock+m.Signed() {
			return fmt.Errorf("%w: movimiento %s declara %d → %d con cantidad %+d",
				domain.ErrConsistency, m.ID, m.PreviousStock, m.NewStock, m.Signed())
		}
		if i > 0 && m.PreviousStock != movements[i-1].NewStock {
			return fmt.Errorf("%w: hueco entre movimientos %s (%d) y %s (%d)",
				domain.ErrConsistency, movements[i-1].ID, movements[i-1].NewStock, m.ID, m.PreviousStock)
		}
	}
	return nil
}
