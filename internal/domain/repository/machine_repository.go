package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// MachineRepository define el puerto de persistencia del parque de máquinas.
type MachineRepository interface {
	Create(machine *entity.Machine) error
	GetByID(id string) (*entity.Machine, error)
	List(limit, offset int) ([]*entity.Machine, error)
}
