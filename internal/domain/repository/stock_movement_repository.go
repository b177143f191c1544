package repository

import (
	"time"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del log append-only de movimientos.
// No hay Update ni Delete: los movimientos son inmutables.
type StockMovementRepository interface {
	Append(movement *entity.StockMovement) error
	ListByPart(partID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByWorkOrder(workOrderID string) ([]*entity.StockMovement, error)
}
