package billing

import (
	"fmt"
	"time"

	"github.com/petverde/green-pos/internal/application/dto"
	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/repository"
)

// SettingUseCase lectura y edición de la configuración del negocio. El
// consecutivo de documentos no se edita por aquí: solo lo avanza la creación
// de documentos bajo bloqueo de fila.
type SettingUseCase struct {
	repo repository.SettingRepository
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(repo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{repo: repo}
}

// Get obtiene la configuración.
func (uc *SettingUseCase) Get() (*dto.SettingResponse, error) {
	s, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	return &dto.SettingResponse{
		BusinessName:      s.BusinessName,
		NIT:               s.NIT,
		Address:           s.Address,
		Phone:             s.Phone,
		Email:             s.Email,
		InvoicePrefix:     s.InvoicePrefix,
		NextInvoiceNumber: s.NextInvoiceNumber,
		IVAResponsable:    s.IVAResponsable,
		TaxRate:           s.TaxRate,
	}, nil
}

// Update actualiza los datos del negocio y la política de impuestos.
func (uc *SettingUseCase) Update(in dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	if in.BusinessName == "" || in.InvoicePrefix == "" {
		return nil, fmt.Errorf("%w: nombre del negocio y prefijo son obligatorios", domain.ErrValidation)
	}
	if in.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: la tasa de impuesto no puede ser negativa", domain.ErrValidation)
	}
	s, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	s.BusinessName = in.BusinessName
	s.NIT = in.NIT
	s.Address = in.Address
	s.Phone = in.Phone
	s.Email = in.Email
	s.InvoicePrefix = in.InvoicePrefix
	s.IVAResponsable = in.IVAResponsable
	s.TaxRate = in.TaxRate
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return uc.Get()
}
