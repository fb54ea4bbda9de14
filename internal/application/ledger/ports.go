package ledger

import (
	"context"

	"github.com/petverde/green-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// de inventario atados a esa transacción. Commit si fn retorna nil, Rollback
// si retorna error.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
