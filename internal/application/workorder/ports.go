package workorder

import (
	"context"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los cuatro
// repositorios del motor atados a ella. Las operaciones combinadas (adjuntar
// o quitar repuestos, cancelación con void) debitan/acreditan el ledger y
// actualizan la orden en la misma transacción: siempre primero la operación
// de ledger, después la orden, para fijar el orden de bloqueo.
type TxRunner interface {
	RunWorkOrder(ctx context.Context, fn func(
		woRepo repository.WorkOrderRepository,
		usageRepo repository.PartUsageRepository,
		partRepo repository.PartRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
