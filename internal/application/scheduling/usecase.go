package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
)

// Prefijo de los productos sintéticos que respaldan servicios.
const serviceProductPrefix = "SERV-"

// UseCase maneja citas de grooming: creación, servicios, cierre con
// facturación idempotente y cancelación. El estado de la cita siempre se
// deriva de sus líneas, nunca se escribe.
type UseCase struct {
	txRunner        SchedulingTxRunner
	documentStore   DocumentStore
	appointmentRepo repository.AppointmentRepository
	serviceTypeRepo repository.ServiceTypeRepository
	customerRepo    repository.CustomerRepository
	documentRepo    repository.DocumentRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner SchedulingTxRunner,
	documentStore DocumentStore,
	appointmentRepo repository.AppointmentRepository,
	serviceTypeRepo repository.ServiceTypeRepository,
	customerRepo repository.CustomerRepository,
	documentRepo repository.DocumentRepository,
) *UseCase {
	return &UseCase{
		txRunner:        txRunner,
		documentStore:   documentStore,
		appointmentRepo: appointmentRepo,
		serviceTypeRepo: serviceTypeRepo,
		customerRepo:    customerRepo,
		documentRepo:    documentRepo,
	}
}

// ServiceInput servicio a agendar. Price en cero toma el precio base del
// tipo; los tipos de precio variable exigen precio pactado.
type ServiceInput struct {
	Code        string
	Price       decimal.Decimal
	Description string
}

// CreateAppointmentInput entrada para crear una cita.
type CreateAppointmentInput struct {
	CustomerID  string
	PetID       string
	Description string
	Technician  string
	ScheduledAt *time.Time
	Services    []ServiceInput
	Actor       string
}

// AppointmentResult cita con líneas y estado derivado.
type AppointmentResult struct {
	Appointment *entity.Appointment
	Lines       []*entity.ServiceLine
	Status      string
}

// CreateAppointment crea la cita y sus líneas de servicio. Por cada servicio
// garantiza el producto sintético SERV-{CODE} que lo respalda.
func (uc *UseCase) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*AppointmentResult, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer_id requerido", domain.ErrValidation)
	}
	if len(in.Services) == 0 {
		return nil, fmt.Errorf("%w: la cita requiere al menos un servicio", domain.ErrValidation)
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	now := time.Now()
	var result *AppointmentResult
	err = uc.txRunner.RunScheduling(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.DocumentRepository,
		_ repository.SettingRepository,
		appointmentRepo repository.AppointmentRepository,
		serviceTypeRepo repository.ServiceTypeRepository,
	) error {
		appt := &entity.Appointment{
			ID:          uuid.New().String(),
			CustomerID:  in.CustomerID,
			PetID:       in.PetID,
			Description: in.Description,
			Technician:  in.Technician,
			ScheduledAt: in.ScheduledAt,
			CreatedBy:   in.Actor,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := appointmentRepo.Create(appt); err != nil {
			return err
		}
		lines := make([]*entity.ServiceLine, 0, len(in.Services))
		for _, svc := range in.Services {
			line, err := uc.addServiceLine(productRepo, serviceTypeRepo, appointmentRepo, appt.ID, svc, now)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}
		result = &AppointmentResult{Appointment: appt, Lines: lines, Status: entity.ComputeStatus(lines)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddService agrega un servicio a una cita aún no facturada.
func (uc *UseCase) AddService(ctx context.Context, appointmentID string, svc ServiceInput, actor string) (*entity.ServiceLine, error) {
	now := time.Now()
	var line *entity.ServiceLine
	err := uc.txRunner.RunScheduling(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.DocumentRepository,
		_ repository.SettingRepository,
		appointmentRepo repository.AppointmentRepository,
		serviceTypeRepo repository.ServiceTypeRepository,
	) error {
		appt, err := appointmentRepo.GetForUpdate(appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return fmt.Errorf("%w: cita %s", domain.ErrNotFound, appointmentID)
		}
		if appt.DocumentID != "" {
			return fmt.Errorf("%w: la cita ya fue facturada", domain.ErrConflict)
		}
		l, err := uc.addServiceLine(productRepo, serviceTypeRepo, appointmentRepo, appt.ID, svc, now)
		if err != nil {
			return err
		}
		line = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// addServiceLine resuelve tipo, precio y producto sintético, y crea la línea.
func (uc *UseCase) addServiceLine(
	productRepo repository.ProductRepository,
	serviceTypeRepo repository.ServiceTypeRepository,
	appointmentRepo repository.AppointmentRepository,
	appointmentID string,
	svc ServiceInput,
	now time.Time,
) (*entity.ServiceLine, error) {
	st, err := serviceTypeRepo.GetByCode(strings.ToUpper(svc.Code))
	if err != nil {
		return nil, err
	}
	if st == nil || !st.Active {
		return nil, fmt.Errorf("%w: tipo de servicio %s", domain.ErrNotFound, svc.Code)
	}

	price := svc.Price
	switch st.PricingMode {
	case entity.PricingModeFixed:
		price = st.BasePrice
	case entity.PricingModeVariable:
		if !price.IsPositive() {
			return nil, fmt.Errorf("%w: el servicio %s requiere precio pactado", domain.ErrValidation, st.Code)
		}
	}

	product, err := uc.ensureServiceProduct(productRepo, st, price, now)
	if err != nil {
		return nil, err
	}

	description := svc.Description
	if description == "" {
		description = st.Name
	}
	line := &entity.ServiceLine{
		ID:            uuid.New().String(),
		AppointmentID: appointmentID,
		ServiceCode:   st.Code,
		ProductID:     product.ID,
		Description:   description,
		Price:         price,
		Status:        entity.AppointmentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := appointmentRepo.CreateLine(line); err != nil {
		return nil, err
	}
	return line, nil
}

// ensureServiceProduct garantiza el producto sintético SERV-{CODE}: lo crea
// si no existe y ajusta su precio cuando el tipo es de precio variable.
func (uc *UseCase) ensureServiceProduct(
	productRepo repository.ProductRepository,
	st *entity.ServiceType,
	price decimal.Decimal,
	now time.Time,
) (*entity.Product, error) {
	code := serviceProductPrefix + st.Code
	product, err := productRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		product = &entity.Product{
			ID:            uuid.New().String(),
			Code:          code,
			Name:          st.Name,
			Description:   st.Description,
			Category:      entity.CategoryService,
			PurchasePrice: st.CalculateCost(price),
			SalePrice:     price,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := productRepo.Create(product); err != nil {
			return nil, err
		}
		return product, nil
	}
	if st.PricingMode == entity.PricingModeVariable && !product.SalePrice.Equal(price) {
		product.SalePrice = price
		product.PurchasePrice = st.CalculateCost(price)
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// FinishInput entrada para cerrar una cita.
type FinishInput struct {
	AppointmentID string
	PaymentMethod string
	Discount      decimal.Decimal
	Actor         string
}

// FinishResult resultado del cierre. AlreadyBilled indica que la cita ya
// tenía factura y solo se sincronizaron estados (cierre idempotente).
type FinishResult struct {
	Appointment   *entity.Appointment
	Lines         []*entity.ServiceLine
	Status        string
	Document      *entity.Document
	DocumentLines []*entity.DocumentLine
	AlreadyBilled bool
}

// Finish cierra la cita: marca como done las líneas no canceladas y genera
// exactamente una factura con ellas. La fila de la cita se bloquea (SELECT
// FOR UPDATE): dos cierres concurrentes no pueden facturar dos veces; el
// segundo ve el DocumentID y solo sincroniza estados.
func (uc *UseCase) Finish(ctx context.Context, in FinishInput) (*FinishResult, error) {
	now := time.Now()
	var result *FinishResult
	err := uc.txRunner.RunScheduling(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		documentRepo repository.DocumentRepository,
		settingRepo repository.SettingRepository,
		appointmentRepo repository.AppointmentRepository,
		_ repository.ServiceTypeRepository,
	) error {
		appt, err := appointmentRepo.GetForUpdate(in.AppointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return fmt.Errorf("%w: cita %s", domain.ErrNotFound, in.AppointmentID)
		}
		lines, err := appointmentRepo.GetLines(appt.ID)
		if err != nil {
			return err
		}

		// Cita ya facturada: solo sincroniza estados, nunca segunda factura
		if appt.DocumentID != "" {
			if err := uc.markBillableDone(appointmentRepo, lines, now); err != nil {
				return err
			}
			result = &FinishResult{
				Appointment:   appt,
				Lines:         lines,
				Status:        entity.ComputeStatus(lines),
				AlreadyBilled: true,
			}
			return nil
		}

		var docLines []billing.LineInput
		for _, l := range lines {
			if l.Status == entity.AppointmentStatusCancelled {
				continue
			}
			docLines = append(docLines, billing.LineInput{
				ProductID: l.ProductID,
				Quantity:  1,
				UnitPrice: l.Price,
			})
		}
		if len(docLines) == 0 {
			return fmt.Errorf("%w: la cita no tiene servicios facturables", domain.ErrValidation)
		}

		doc, createdLines, err := uc.documentStore.CreateInvoiceInTx(
			productRepo, movementRepo, documentRepo, settingRepo,
			billing.CreateInvoiceInput{
				CustomerID:    appt.CustomerID,
				Lines:         docLines,
				PaymentMethod: in.PaymentMethod,
				Discount:      in.Discount,
				Notes:         fmt.Sprintf("Cita %s", appt.ID),
				Actor:         in.Actor,
			},
			now,
		)
		if err != nil {
			return err
		}

		if err := uc.markBillableDone(appointmentRepo, lines, now); err != nil {
			return err
		}
		appt.DocumentID = doc.ID
		appt.UpdatedAt = now
		if err := appointmentRepo.Update(appt); err != nil {
			return err
		}

		result = &FinishResult{
			Appointment:   appt,
			Lines:         lines,
			Status:        entity.ComputeStatus(lines),
			Document:      doc,
			DocumentLines: createdLines,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// markBillableDone pasa a done toda línea no cancelada.
func (uc *UseCase) markBillableDone(appointmentRepo repository.AppointmentRepository, lines []*entity.ServiceLine, now time.Time) error {
	for _, l := range lines {
		if l.Status == entity.AppointmentStatusCancelled || l.Status == entity.AppointmentStatusDone {
			continue
		}
		l.Status = entity.AppointmentStatusDone
		l.UpdatedAt = now
		if err := appointmentRepo.UpdateLine(l); err != nil {
			return err
		}
	}
	return nil
}

// Cancel cancela toda línea aún no realizada. Las líneas done se conservan y
// el documento enlazado nunca se toca.
func (uc *UseCase) Cancel(ctx context.Context, appointmentID, actor string) (*AppointmentResult, error) {
	now := time.Now()
	var result *AppointmentResult
	err := uc.txRunner.RunScheduling(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.DocumentRepository,
		_ repository.SettingRepository,
		appointmentRepo repository.AppointmentRepository,
		_ repository.ServiceTypeRepository,
	) error {
		appt, err := appointmentRepo.GetForUpdate(appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return fmt.Errorf("%w: cita %s", domain.ErrNotFound, appointmentID)
		}
		lines, err := appointmentRepo.GetLines(appt.ID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if l.Status == entity.AppointmentStatusDone || l.Status == entity.AppointmentStatusCancelled {
				continue
			}
			l.Status = entity.AppointmentStatusCancelled
			l.UpdatedAt = now
			if err := appointmentRepo.UpdateLine(l); err != nil {
				return err
			}
		}
		result = &AppointmentResult{Appointment: appt, Lines: lines, Status: entity.ComputeStatus(lines)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateServiceStatus cambia el estado de una línea de una cita no facturada.
func (uc *UseCase) UpdateServiceStatus(ctx context.Context, appointmentID, lineID, status string) (*AppointmentResult, error) {
	switch status {
	case entity.AppointmentStatusPending, entity.AppointmentStatusDone, entity.AppointmentStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: estado %q inválido", domain.ErrValidation, status)
	}

	now := time.Now()
	var result *AppointmentResult
	err := uc.txRunner.RunScheduling(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.DocumentRepository,
		_ repository.SettingRepository,
		appointmentRepo repository.AppointmentRepository,
		_ repository.ServiceTypeRepository,
	) error {
		appt, err := appointmentRepo.GetForUpdate(appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return fmt.Errorf("%w: cita %s", domain.ErrNotFound, appointmentID)
		}
		if appt.DocumentID != "" {
			return fmt.Errorf("%w: la cita ya fue facturada", domain.ErrConflict)
		}
		lines, err := appointmentRepo.GetLines(appt.ID)
		if err != nil {
			return err
		}
		var target *entity.ServiceLine
		for _, l := range lines {
			if l.ID == lineID {
				target = l
				break
			}
		}
		if target == nil {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, lineID)
		}
		target.Status = status
		target.UpdatedAt = now
		if err := appointmentRepo.UpdateLine(target); err != nil {
			return err
		}
		result = &AppointmentResult{Appointment: appt, Lines: lines, Status: entity.ComputeStatus(lines)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get obtiene una cita con líneas y estado derivado.
func (uc *UseCase) Get(ctx context.Context, appointmentID string) (*AppointmentResult, error) {
	appt, err := uc.appointmentRepo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, fmt.Errorf("%w: cita %s", domain.ErrNotFound, appointmentID)
	}
	lines, err := uc.appointmentRepo.GetLines(appt.ID)
	if err != nil {
		return nil, err
	}
	return &AppointmentResult{Appointment: appt, Lines: lines, Status: entity.ComputeStatus(lines)}, nil
}

// List lista todas las citas con sus líneas.
func (uc *UseCase) List(ctx context.Context) ([]*AppointmentResult, error) {
	appts, err := uc.appointmentRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*AppointmentResult, 0, len(appts))
	for _, appt := range appts {
		lines, err := uc.appointmentRepo.GetLines(appt.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &AppointmentResult{Appointment: appt, Lines: lines, Status: entity.ComputeStatus(lines)})
	}
	return out, nil
}
