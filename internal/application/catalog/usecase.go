package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petverde/green-pos/internal/application/dto"
	ledgeruc "github.com/petverde/green-pos/internal/application/ledger"
	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
)

// StockLedger registra el movimiento inicial de inventario al crear un
// producto con existencias.
type StockLedger interface {
	RecordMovement(ctx context.Context, in ledgeruc.MovementInput) (*entity.StockMovement, error)
}

// UseCase casos de uso CRUD del catálogo de productos. El saldo de
// existencias nunca se escribe por aquí: todo cambio pasa por el libro de
// inventario.
type UseCase struct {
	repo        repository.ProductRepository
	stockLedger StockLedger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository, stockLedger StockLedger) *UseCase {
	return &UseCase{repo: repo, stockLedger: stockLedger}
}

// Create crea un producto. Si InitialStock > 0 se asienta como un movimiento
// de entrada, no como una escritura directa del saldo.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest, actor string) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrValidation)
	}
	if in.InitialStock < 0 {
		return nil, fmt.Errorf("%w: el stock inicial no puede ser negativo", domain.ErrValidation)
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un producto con código %s", domain.ErrDuplicate, in.Code)
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          in.Code,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		StockMin:      in.StockMin,
		StockWarning:  in.StockWarning,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	if in.InitialStock > 0 {
		mov, err := uc.stockLedger.RecordMovement(ctx, ledgeruc.MovementInput{
			ProductID: product.ID,
			Quantity:  in.InitialStock,
			Reason:    "Stock inicial",
			Actor:     actor,
		})
		if err != nil {
			return nil, err
		}
		product.CurrentBalance = mov.NewStock
	}
	return toProductResponse(product), nil
}

// Update actualiza los datos del producto (sin tocar existencias).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	product.Description = in.Description
	product.Category = in.Category
	product.PurchasePrice = in.PurchasePrice
	product.SalePrice = in.SalePrice
	product.StockMin = in.StockMin
	product.StockWarning = in.StockWarning
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto sin historial. Con movimientos o ventas la base
// rechaza el borrado y se retorna conflicto.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(id)
}

// Get obtiene un producto por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// List lista productos, con filtro opcional por código o nombre.
func (uc *UseCase) List(ctx context.Context, query string) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(query)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		PurchasePrice:  p.PurchasePrice,
		SalePrice:      p.SalePrice,
		CurrentBalance: p.CurrentBalance,
		StockMin:       p.StockMin,
		StockWarning:   p.StockWarning,
		IsService:      p.IsService(),
	}
}
