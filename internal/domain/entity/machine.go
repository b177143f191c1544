package entity

import "time"

// Machine representa un equipo del parque de máquinas sobre el que se
// reportan órdenes de trabajo.
type Machine struct {
	ID        string
	Name      string
	Code      string // código interno único
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
