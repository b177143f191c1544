package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles de usuario.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleTechnician = "technician"
)

// User representa un usuario de la aplicación. Los técnicos llevan una tarifa
// horaria por defecto que sirve de fallback al asignarlos a una orden.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	HourlyRate   decimal.Decimal // tarifa por defecto; puede ser 0 para no-técnicos
	Status       string          // active | inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
