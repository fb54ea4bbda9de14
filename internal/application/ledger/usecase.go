package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/ledger"
	"github.com/petverde/green-pos/internal/domain/repository"
	"github.com/petverde/green-pos/pkg/logger"
)

// Policy comportamiento del motor ante saldos negativos.
type Policy struct {
	// BlockNegative rechaza salidas que dejarían el saldo por debajo de cero.
	// Por defecto false: se permite el backorder y se registra una advertencia.
	BlockNegative bool
}

// UseCase es el motor del libro de inventario: todo cambio de existencias
// entra por aquí como una entrada append-only más la actualización atómica
// del saldo del producto, bajo bloqueo de fila (SELECT FOR UPDATE).
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	policy       Policy
	log          *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	policy Policy,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		policy:       policy,
		log:          log,
	}
}

// MovementInput entrada para registrar un movimiento manual.
// Quantity lleva signo: positivo entra, negativo sale. Cero solo se admite en
// conteos físicos (verificación sin diferencia).
type MovementInput struct {
	ProductID string
	Quantity  int64
	Reason    string
	Reference string
	Actor     string
}

// RecordMovement registra un movimiento en su propia transacción.
func (uc *UseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrValidation)
	}
	if in.Quantity == 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser cero", domain.ErrValidation)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: la razón del movimiento es obligatoria", domain.ErrValidation)
	}

	now := time.Now()
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		m, err := uc.RecordMovementInTx(productRepo, movementRepo, in.ProductID, in.Quantity, in.Reason, in.Reference, in.Actor, false, now)
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordMovementInTx aplica un movimiento usando los repositorios del caller
// (misma transacción). Bloquea la fila del producto, lee el saldo
// inmediatamente antes de escribir, inserta la entrada y actualiza el saldo.
// Lo usan facturación y notas crédito para descontar/restaurar stock dentro
// de la transacción del documento.
func (uc *UseCase) RecordMovementInTx(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	productID string,
	signedQty int64,
	reason, reference, actor string,
	isPhysicalCount bool,
	now time.Time,
) (*entity.StockMovement, error) {
	// Bloquea la fila del producto (SELECT FOR UPDATE)
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}

	previous := product.CurrentBalance
	newBalance := previous + signedQty
	if newBalance < 0 && !product.IsService() {
		if uc.policy.BlockNegative {
			return nil, fmt.Errorf("%w: el movimiento dejaría el saldo de %s en %d", domain.ErrValidation, product.Code, newBalance)
		}
		uc.log.Warn().
			Str("product_code", product.Code).
			Int64("balance", newBalance).
			Msg("venta con stock insuficiente: saldo negativo (backorder)")
	}

	direction := entity.DirectionAddition
	qty := signedQty
	if signedQty < 0 {
		direction = entity.DirectionSubtraction
		qty = -signedQty
	}

	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		ProductID:       productID,
		Quantity:        qty,
		Direction:       direction,
		Reason:          reason,
		PreviousStock:   previous,
		NewStock:        newBalance,
		IsPhysicalCount: isPhysicalCount,
		Reference:       reference,
		CreatedBy:       actor,
		CreatedAt:       now,
	}
	if err := movementRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateBalance(productID, newBalance); err != nil {
		return nil, err
	}
	uc.warnIfLow(product, newBalance)
	return mov, nil
}

// CountInput entrada para registrar un conteo físico.
type CountInput struct {
	ProductID    string
	CountedStock int64
	Notes        string
	Actor        string
}

// RecordCount registra un conteo físico: la diferencia contra el saldo actual
// se asienta como un movimiento marcado is_physical_count y el saldo queda en
// el valor contado. Sin diferencia se escribe igualmente una entrada de
// cantidad cero como constancia de la verificación.
func (uc *UseCase) RecordCount(ctx context.Context, in CountInput) (*entity.StockMovement, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrValidation)
	}
	if in.CountedStock < 0 {
		return nil, fmt.Errorf("%w: el conteo no puede ser negativo", domain.ErrValidation)
	}

	now := time.Now()
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
		diff := in.CountedStock - product.CurrentBalance
		reason := fmt.Sprintf("Conteo físico: %d contado vs %d en sistema", in.CountedStock, product.CurrentBalance)
		if in.Notes != "" {
			reason = reason + ". " + in.Notes
		}
		m, err := uc.RecordMovementInTx(productRepo, movementRepo, in.ProductID, diff, reason, "", in.Actor, true, now)
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// History devuelve la cadena de movimientos del producto en orden
// cronológico ascendente.
func (uc *UseCase) History(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return uc.movementRepo.ListByProduct(productID)
}

// VerifyHistory valida la continuidad de la cadena de movimientos del
// producto (sin huecos, aritmética consistente). Retorna ErrConsistency si el
// libro está corrupto.
func (uc *UseCase) VerifyHistory(ctx context.Context, productID string) error {
	movements, err := uc.History(ctx, productID)
	if err != nil {
		return err
	}
	return ledger.VerifyChain(movements)
}

// warnIfLow registra advertencia de reposición al cruzar el umbral.
func (uc *UseCase) warnIfLow(product *entity.Product, balance int64) {
	if product.IsService() || product.StockWarning <= 0 {
		return
	}
	if balance <= product.StockWarning {
		uc.log.Warn().
			Str("product_code", product.Code).
			Int64("balance", balance).
			Int64("stock_warning", product.StockWarning).
			Msg("existencias por debajo del umbral de alerta")
	}
}
