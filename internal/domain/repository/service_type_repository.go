package repository

import "github.com/petverde/green-pos/internal/domain/entity"

// ServiceTypeRepository puerto de persistencia para tipos de servicio.
type ServiceTypeRepository interface {
	Create(st *entity.ServiceType) error
	Update(st *entity.ServiceType) error
	GetByCode(code string) (*entity.ServiceType, error)
	List(activeOnly bool) ([]*entity.ServiceType, error)
}
