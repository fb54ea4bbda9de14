package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petverde/green-pos/internal/application/dto"
	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
	"github.com/petverde/green-pos/pkg/nit"
)

// CustomerUseCase casos de uso CRUD de clientes. El saldo a favor
// (credit_balance) nunca se edita por aquí: lo mutan las notas crédito y el
// motor de aplicación.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Document == "" {
		return nil, fmt.Errorf("%w: nombre y documento son obligatorios", domain.ErrValidation)
	}
	// Documento con guion = NIT con dígito de verificación
	if strings.Contains(in.Document, "-") {
		if err := nit.Validate(in.Document); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza los datos de contacto de un cliente.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get obtiene un cliente por ID.
func (uc *CustomerUseCase) Get(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes, con filtro opcional por nombre o documento.
func (uc *CustomerUseCase) List(query string) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(query)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Document:      c.Document,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		CreditBalance: c.CreditBalance,
	}
}
