package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo. completed y cancelled son terminales.
const (
	StatusReported   = "reported"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Tipos de orden de trabajo.
const (
	TypeCorrective = "corrective"
	TypePreventive = "preventive"
	TypeInspection = "inspection"
)

// Prioridades.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// WorkOrder representa una orden de trabajo de mantenimiento, desde el
// reporte hasta su cierre. Version es el token de concurrencia optimista:
// toda escritura la incrementa y falla si otra operación la cambió antes.
// Las órdenes nunca se borran físicamente; cancelled es el cierre suave.
type WorkOrder struct {
	ID           string
	Status       string
	Type         string
	Priority     string
	MachineID    string
	TechnicianID string // vacío hasta la asignación
	Description  string
	Resolution   string // obligatoria para llegar a completed

	EstimatedMinutes int
	ActualMinutes    int             // 0 = sin registrar
	HourlyRate       decimal.Decimal // snapshot tomado en la asignación, inmutable después

	PartsCost decimal.Decimal
	LaborCost decimal.Decimal
	TotalCost decimal.Decimal

	TechConfirmed     bool
	TechConfirmedAt   *time.Time
	ClientConfirmed   bool
	ClientConfirmedAt *time.Time
	SignatureRef      string // referencia al artefacto de firma (almacenamiento externo)
	SignerName        string

	Version int

	DateReported  time.Time
	DateStarted   *time.Time
	DateCompleted *time.Time
	CreatedBy     string
	UpdatedAt     time.Time
}

// IsTerminal indica si la orden está en un estado final (completed o cancelled).
func (w *WorkOrder) IsTerminal() bool {
	return w.Status == StatusCompleted || w.Status == StatusCancelled
}

// ValidType valida el tipo de orden.
func ValidType(t string) bool {
	switch t {
	case TypeCorrective, TypePreventive, TypeInspection:
		return true
	}
	return false
}

// ValidPriority valida la prioridad.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}
