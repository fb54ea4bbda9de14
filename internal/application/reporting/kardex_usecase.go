package reporting

import (
	"context"
	"fmt"

	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/ledger"
	"github.com/petverde/green-pos/internal/domain/repository"
)

// KardexUseCase reconstruye el kardex retroactivo de un producto: mezcla el
// libro de movimientos con las ventas anteriores a la adopción del libro en
// una sola línea de tiempo con saldos resueltos.
type KardexUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	documentRepo repository.DocumentRepository
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	documentRepo repository.DocumentRepository,
) *KardexUseCase {
	return &KardexUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		documentRepo: documentRepo,
	}
}

// KardexResult producto y su línea de tiempo reconstruida.
type KardexResult struct {
	Product *entity.Product
	Entries []ledger.TimelineEntry
}

// Kardex arma la línea de tiempo del producto. Las ventas que ya dejaron
// movimiento en el libro (referencia al documento) se excluyen de las
// deducciones implícitas para no contarlas dos veces; solo las ventas
// históricas sin movimiento entran como entradas sintéticas.
func (uc *KardexUseCase) Kardex(ctx context.Context, productID string) (*KardexResult, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}

	movements, err := uc.movementRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	sales, err := uc.documentRepo.SaleEntriesByProduct(productID)
	if err != nil {
		return nil, err
	}

	covered := make(map[string]bool, len(movements))
	for _, m := range movements {
		if m.Reference != "" {
			covered[m.Reference] = true
		}
	}
	implicit := sales[:0:0]
	for _, s := range sales {
		if covered[s.DocumentID] {
			continue
		}
		implicit = append(implicit, s)
	}

	entries, err := ledger.BuildTimeline(movements, implicit, product.CurrentBalance)
	if err != nil {
		return nil, err
	}
	return &KardexResult{Product: product, Entries: entries}, nil
}
