package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// WorkOrderFilter filtros de listado.
type WorkOrderFilter struct {
	Status       string
	TechnicianID string
	MachineID    string
	Limit        int
	Offset       int
}

// WorkOrderRepository define el puerto de persistencia de órdenes de trabajo.
// UpdateVersioned es la escritura con check optimista: compara Version, escribe
// todos los campos mutables y la incrementa en la misma sentencia; si otra
// operación ganó la carrera devuelve domain.ErrConcurrentModification.
type WorkOrderRepository interface {
	Create(order *entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	List(filter WorkOrderFilter) ([]*entity.WorkOrder, error)
	UpdateVersioned(order *entity.WorkOrder) error
}
