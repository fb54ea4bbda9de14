package repository

import "github.com/petverde/green-pos/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE): el saldo debe leerse
// inmediatamente antes de escribir dentro de la misma transacción.
type ProductRepository interface {
	Create(p *entity.Product) error
	Update(p *entity.Product) error
	Delete(id string) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	UpdateBalance(id string, balance int64) error
	List(query string) ([]*entity.Product, error)
}
