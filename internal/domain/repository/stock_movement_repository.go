package repository

import "github.com/petverde/green-pos/internal/domain/entity"

// StockMovementRepository puerto del libro de inventario. Append-only: no hay
// Update ni Delete; los reversos son entradas compensatorias nuevas.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	// ListByProduct devuelve la cadena completa en orden cronológico
	// ascendente (created_at, id).
	ListByProduct(productID string) ([]*entity.StockMovement, error)
}
