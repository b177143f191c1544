package dto

import (
	"time"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// CreateMachineRequest alta de máquina.
type CreateMachineRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Location string `json:"location"`
}

// MachineResponse máquina en respuestas.
type MachineResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// ToMachineResponse mapea entidad -> DTO.
func ToMachineResponse(m *entity.Machine) *MachineResponse {
	return &MachineResponse{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Location:  m.Location,
		CreatedAt: m.CreatedAt,
	}
}
