package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petverde/green-pos/internal/application/dto"
	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
)

var decimalHundred = decimal.NewFromInt(100)

// ServiceTypeUseCase casos de uso CRUD de tipos de servicio.
type ServiceTypeUseCase struct {
	repo repository.ServiceTypeRepository
}

// NewServiceTypeUseCase construye el caso de uso.
func NewServiceTypeUseCase(repo repository.ServiceTypeRepository) *ServiceTypeUseCase {
	return &ServiceTypeUseCase{repo: repo}
}

func validPricingMode(mode string) bool {
	return mode == entity.PricingModeFixed || mode == entity.PricingModeVariable
}

// Create crea un tipo de servicio.
func (uc *ServiceTypeUseCase) Create(in dto.CreateServiceTypeRequest) (*dto.ServiceTypeResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrValidation)
	}
	if !validPricingMode(in.PricingMode) {
		return nil, fmt.Errorf("%w: pricing_mode debe ser fixed o variable", domain.ErrValidation)
	}
	if in.ProfitPercentage.IsNegative() || in.ProfitPercentage.GreaterThan(decimalHundred) {
		return nil, fmt.Errorf("%w: profit_percentage fuera de rango (0-100)", domain.ErrValidation)
	}
	existing, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe el tipo de servicio %s", domain.ErrDuplicate, code)
	}

	now := time.Now()
	st := &entity.ServiceType{
		ID:               uuid.New().String(),
		Code:             code,
		Name:             in.Name,
		Description:      in.Description,
		PricingMode:      in.PricingMode,
		BasePrice:        in.BasePrice,
		ProfitPercentage: in.ProfitPercentage,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(st); err != nil {
		return nil, err
	}
	return toServiceTypeResponse(st), nil
}

// Update actualiza un tipo de servicio por código.
func (uc *ServiceTypeUseCase) Update(code string, in dto.UpdateServiceTypeRequest) (*dto.ServiceTypeResponse, error) {
	st, err := uc.repo.GetByCode(strings.ToUpper(code))
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: tipo de servicio %s", domain.ErrNotFound, code)
	}
	if !validPricingMode(in.PricingMode) {
		return nil, fmt.Errorf("%w: pricing_mode debe ser fixed o variable", domain.ErrValidation)
	}
	if in.ProfitPercentage.IsNegative() || in.ProfitPercentage.GreaterThan(decimalHundred) {
		return nil, fmt.Errorf("%w: profit_percentage fuera de rango (0-100)", domain.ErrValidation)
	}
	if in.Name != "" {
		st.Name = in.Name
	}
	st.Description = in.Description
	st.PricingMode = in.PricingMode
	st.BasePrice = in.BasePrice
	st.ProfitPercentage = in.ProfitPercentage
	st.Active = in.Active
	st.UpdatedAt = time.Now()
	if err := uc.repo.Update(st); err != nil {
		return nil, err
	}
	return toServiceTypeResponse(st), nil
}

// List lista los tipos de servicio.
func (uc *ServiceTypeUseCase) List(activeOnly bool) ([]*dto.ServiceTypeResponse, error) {
	list, err := uc.repo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ServiceTypeResponse, 0, len(list))
	for _, st := range list {
		out = append(out, toServiceTypeResponse(st))
	}
	return out, nil
}

func toServiceTypeResponse(st *entity.ServiceType) *dto.ServiceTypeResponse {
	return &dto.ServiceTypeResponse{
		ID:               st.ID,
		Code:             st.Code,
		Name:             st.Name,
		Description:      st.Description,
		PricingMode:      st.PricingMode,
		BasePrice:        st.BasePrice,
		ProfitPercentage: st.ProfitPercentage,
		Active:           st.Active,
	}
}
