package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// LedgerUseCase es el único componente que muta stock. Cada débito/crédito
// bloquea la fila del repuesto (SELECT FOR UPDATE), valida, escribe la nueva
// cantidad y agrega exactamente un StockMovement con before/after, todo en
// una unidad serializada por repuesto. Ningún stock cambia sin su movimiento.
type LedgerUseCase struct {
	txRunner TxRunner
	partRepo repository.PartRepository
	movRepo  repository.StockMovementRepository
}

// NewLedgerUseCase construye el ledger.
func NewLedgerUseCase(txRunner TxRunner, partRepo repository.PartRepository, movRepo repository.StockMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, partRepo: partRepo, movRepo: movRepo}
}

// MovementInput entrada para un débito o crédito.
type MovementInput struct {
	PartID      string
	Quantity    int
	Reason      string
	WorkOrderID string // vacío si no aplica
	ActorID     string
}

// Debit descuenta stock en su propia transacción.
// Falla con ErrInsufficientStock si la cantidad excede el stock actual.
func (uc *LedgerUseCase) Debit(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, movRepo repository.StockMovementRepository) error {
		m, _, err := DebitInTx(partRepo, movRepo, input, time.Now())
		mov = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Credit repone stock en su propia transacción. Reponer nunca falla por cantidad.
func (uc *LedgerUseCase) Credit(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, movRepo repository.StockMovementRepository) error {
		m, err := CreditInTx(partRepo, movRepo, input, time.Now())
		mov = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// CurrentStock devuelve el último stock confirmado del repuesto.
func (uc *LedgerUseCase) CurrentStock(ctx context.Context, partID string) (int, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return 0, err
	}
	if part == nil {
		return 0, domain.ErrNotFound
	}
	return part.Stock, nil
}

// ListMovements devuelve el log de auditoría de un repuesto.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, partID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByPart(partID, from, to, limit, offset)
}

// ListWorkOrderMovements devuelve los movimientos generados por una orden de
// trabajo (débitos de consumo, créditos de retorno o void).
func (uc *LedgerUseCase) ListWorkOrderMovements(ctx context.Context, workOrderID string) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByWorkOrder(workOrderID)
}

// DebitInTx ejecuta un débito usando repositorios atados a la transacción del
// caller, para operaciones combinadas (adjuntar repuesto a una orden) donde el
// débito y la actualización de la orden deben confirmar o deshacerse juntos.
// Devuelve también el repuesto leído bajo el lock: su UnitPrice es el snapshot
// de precio vigente al momento del consumo (siempre lee la verdad actual,
// nunca un valor cacheado).
func DebitInTx(
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, *entity.Part, error) {
	if input.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}
	// Bloquea la fila del repuesto: serializa débitos/créditos del mismo repuesto.
	part, err := partRepo.GetForUpdate(input.PartID)
	if err != nil {
		return nil, nil, err
	}
	if part == nil {
		return nil, nil, domain.ErrNotFound
	}
	if part.Stock < input.Quantity {
		return nil, nil, domain.ErrInsufficientStock
	}
	before := part.Stock
	after := before - input.Quantity
	if err := partRepo.UpdateStock(part.ID, after); err != nil {
		return nil, nil, err
	}
	part.Stock = after
	mov := newMovement(entity.MovementDebit, input, before, after, now)
	if err := movRepo.Append(mov); err != nil {
		return nil, nil, err
	}
	return mov, part, nil
}

// CreditInTx ejecuta un crédito dentro de la transacción del caller.
func CreditInTx(
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	part, err := partRepo.GetForUpdate(input.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	before := part.Stock
	after := before + input.Quantity
	if err := partRepo.UpdateStock(part.ID, after); err != nil {
		return nil, err
	}
	mov := newMovement(entity.MovementCredit, input, before, after, now)
	if err := movRepo.Append(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// newMovement arma el registro inmutable y verifica la reconciliación
// before/after. Una violación aquí es corrupción del ledger (bug de
// programación, no error del caller): se aborta el proceso.
func newMovement(kind string, input MovementInput, before, after int, now time.Time) *entity.StockMovement {
	delta := after - before
	if (kind == entity.MovementDebit && delta != -input.Quantity) ||
		(kind == entity.MovementCredit && delta != input.Quantity) ||
		after < 0 {
		panic(fmt.Sprintf("ledger corrupto: movimiento %s qty=%d before=%d after=%d part=%s",
			kind, input.Quantity, before, after, input.PartID))
	}
	return &entity.StockMovement{
		ID:          uuid.New().String(),
		PartID:      input.PartID,
		Kind:        kind,
		Quantity:    input.Quantity,
		StockBefore: before,
		StockAfter:  after,
		Reason:      input.Reason,
		WorkOrderID: input.WorkOrderID,
		CreatedAt:   now,
		CreatedBy:   input.ActorID,
	}
}
