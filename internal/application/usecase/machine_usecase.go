package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// MachineUseCase casos de uso CRUD para el parque de máquinas.
type MachineUseCase struct {
	repo repository.MachineRepository
}

// NewMachineUseCase construye el caso de uso.
func NewMachineUseCase(repo repository.MachineRepository) *MachineUseCase {
	return &MachineUseCase{repo: repo}
}

// Create crea una máquina.
func (uc *MachineUseCase) Create(in dto.CreateMachineRequest) (*dto.MachineResponse, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	machine := &entity.Machine{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(machine); err != nil {
		return nil, err
	}
	return dto.ToMachineResponse(machine), nil
}

// GetByID obtiene una máquina.
func (uc *MachineUseCase) GetByID(id string) (*dto.MachineResponse, error) {
	machine, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToMachineResponse(machine), nil
}

// List lista máquinas paginado.
func (uc *MachineUseCase) List(limit, offset int) ([]*dto.MachineResponse, error) {
	machines, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MachineResponse, 0, len(machines))
	for _, m := range machines {
		out = append(out, dto.ToMachineResponse(m))
	}
	return out, nil
}
