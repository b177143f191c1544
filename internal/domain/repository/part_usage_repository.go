package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// PartUsageRepository define el puerto de persistencia de consumos de
// repuestos por orden de trabajo.
type PartUsageRepository interface {
	Create(usage *entity.PartUsage) error
	GetByID(id string) (*entity.PartUsage, error)
	ListByWorkOrder(workOrderID string) ([]*entity.PartUsage, error)
	UpdateQuantity(id string, quantity int) error
	Delete(id string) error
}
