package workorder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
	dworkorder "github.com/jhoicas/Mantenimiento-api/internal/domain/workorder"
)

// UsageUseCase orquesta el consumo de repuestos contra una orden de trabajo:
// snapshot de precio, débito/crédito de ledger, fila de consumo y recálculo
// de costos, todo dentro de una transacción. Si el débito falla no se crea
// ninguna fila; si la orden cambió de versión, la transacción se revierte
// entera y el débito se deshace con ella.
type UsageUseCase struct {
	txRunner TxRunner
}

// NewUsageUseCase construye el gestor de consumos.
func NewUsageUseCase(txRunner TxRunner) *UsageUseCase {
	return &UsageUseCase{txRunner: txRunner}
}

// AttachPart adjunta quantity unidades del repuesto a la orden. El precio
// unitario queda congelado al valor de catálogo vigente, leído bajo el lock
// de la fila del repuesto.
func (uc *UsageUseCase) AttachPart(ctx context.Context, workOrderID, partID string, quantity int, actorID string) (*entity.PartUsage, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var usage *entity.PartUsage
	err := uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		usageRepo repository.PartUsageRepository,
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
	) error {
		order, err := loadOpenOrder(woRepo, workOrderID)
		if err != nil {
			return err
		}
		now := time.Now()
		// Ledger primero (orden de bloqueo fijo: repuesto, luego orden).
		_, part, err := inventory.DebitInTx(partRepo, movRepo, inventory.MovementInput{
			PartID:      partID,
			Quantity:    quantity,
			Reason:      entity.ReasonWorkOrderUse,
			WorkOrderID: order.ID,
			ActorID:     actorID,
		}, now)
		if err != nil {
			return err
		}
		usage = &entity.PartUsage{
			ID:             uuid.New().String(),
			WorkOrderID:    order.ID,
			PartID:         partID,
			Quantity:       quantity,
			UnitPriceAtUse: part.UnitPrice,
			CreatedAt:      now,
			CreatedBy:      actorID,
		}
		if err := usageRepo.Create(usage); err != nil {
			return err
		}
		return recomputeAndSave(woRepo, usageRepo, order, now)
	})
	if err != nil {
		return nil, err
	}
	return usage, nil
}

// DetachPart quita un consumo y acredita el stock de vuelta. No se permite
// sobre órdenes terminales: el historial de costos de una orden completada es
// inmutable (los ajustes administrativos son una compensación aparte).
func (uc *UsageUseCase) DetachPart(ctx context.Context, workOrderID, usageID, actorID string) error {
	return uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		usageRepo repository.PartUsageRepository,
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
	) error {
		order, err := loadOpenOrder(woRepo, workOrderID)
		if err != nil {
			return err
		}
		usage, err := loadUsage(usageRepo, order.ID, usageID)
		if err != nil {
			return err
		}
		now := time.Now()
		if _, err := inventory.CreditInTx(partRepo, movRepo, inventory.MovementInput{
			PartID:      usage.PartID,
			Quantity:    usage.Quantity,
			Reason:      entity.ReasonWorkOrderReturn,
			WorkOrderID: order.ID,
			ActorID:     actorID,
		}, now); err != nil {
			return err
		}
		if err := usageRepo.Delete(usage.ID); err != nil {
			return err
		}
		return recomputeAndSave(woRepo, usageRepo, order, now)
	})
}

// ChangeQuantity ajusta la cantidad de un consumo existente. A nivel de
// ledger es un par crédito(cantidad vieja) + débito(cantidad nueva) contra el
// stock actual, preservando el escritor único por repuesto; la fila conserva
// su UnitPriceAtUse original.
func (uc *UsageUseCase) ChangeQuantity(ctx context.Context, workOrderID, usageID string, newQuantity int, actorID string) (*entity.PartUsage, error) {
	if newQuantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var updated *entity.PartUsage
	err := uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		usageRepo repository.PartUsageRepository,
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
	) error {
		order, err := loadOpenOrder(woRepo, workOrderID)
		if err != nil {
			return err
		}
		usage, err := loadUsage(usageRepo, order.ID, usageID)
		if err != nil {
			return err
		}
		if usage.Quantity == newQuantity {
			updated = usage
			return nil
		}
		now := time.Now()
		if _, err := inventory.CreditInTx(partRepo, movRepo, inventory.MovementInput{
			PartID:      usage.PartID,
			Quantity:    usage.Quantity,
			Reason:      entity.ReasonWorkOrderReturn,
			WorkOrderID: order.ID,
			ActorID:     actorID,
		}, now); err != nil {
			return err
		}
		if _, _, err := inventory.DebitInTx(partRepo, movRepo, inventory.MovementInput{
			PartID:      usage.PartID,
			Quantity:    newQuantity,
			Reason:      entity.ReasonWorkOrderUse,
			WorkOrderID: order.ID,
			ActorID:     actorID,
		}, now); err != nil {
			return err
		}
		if err := usageRepo.UpdateQuantity(usage.ID, newQuantity); err != nil {
			return err
		}
		usage.Quantity = newQuantity
		updated = usage
		return recomputeAndSave(woRepo, usageRepo, order, now)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// loadOpenOrder carga la orden y rechaza estados terminales.
func loadOpenOrder(woRepo repository.WorkOrderRepository, workOrderID string) (*entity.WorkOrder, error) {
	order, err := woRepo.GetByID(workOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.IsTerminal() {
		return nil, domain.ErrWorkOrderTerminal
	}
	return order, nil
}

// loadUsage carga el consumo verificando que pertenezca a la orden.
func loadUsage(usageRepo repository.PartUsageRepository, workOrderID, usageID string) (*entity.PartUsage, error) {
	usage, err := usageRepo.GetByID(usageID)
	if err != nil {
		return nil, err
	}
	if usage == nil || usage.WorkOrderID != workOrderID {
		return nil, domain.ErrNotFound
	}
	return usage, nil
}

// recomputeAndSave recalcula costos sobre los consumos vivos y persiste la
// orden bajo el check de versión.
func recomputeAndSave(woRepo repository.WorkOrderRepository, usageRepo repository.PartUsageRepository, order *entity.WorkOrder, now time.Time) error {
	usages, err := usageRepo.ListByWorkOrder(order.ID)
	if err != nil {
		return err
	}
	dworkorder.Recompute(order, usages)
	order.UpdatedAt = now
	return woRepo.UpdateVersioned(order)
}

// removeAllUsages acredita y borra todos los consumos vivos de la orden
// (void de cancelación). Deja PartsCost en cero vía Recompute del caller.
func removeAllUsages(
	usageRepo repository.PartUsageRepository,
	partRepo repository.PartRepository,
	movRepo repository.StockMovementRepository,
	order *entity.WorkOrder,
	reason, actorID string,
	now time.Time,
) error {
	usages, err := usageRepo.ListByWorkOrder(order.ID)
	if err != nil {
		return err
	}
	for _, u := range usages {
		if _, err := inventory.CreditInTx(partRepo, movRepo, inventory.MovementInput{
			PartID:      u.PartID,
			Quantity:    u.Quantity,
			Reason:      reason,
			WorkOrderID: order.ID,
			ActorID:     actorID,
		}, now); err != nil {
			return err
		}
		if err := usageRepo.Delete(u.ID); err != nil {
			return err
		}
	}
	return nil
}
