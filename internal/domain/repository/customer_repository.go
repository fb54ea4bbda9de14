package repository

import (
	"github.com/shopspring/decimal"

	"github.com/petverde/green-pos/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para clientes. GetForUpdate
// bloquea la fila para mutar credit_balance sin carreras.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	Update(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetForUpdate(id string) (*entity.Customer, error)
	UpdateCreditBalance(id string, balance decimal.Decimal) error
	List(query string) ([]*entity.Customer, error)
}
