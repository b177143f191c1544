// Package workorder contiene los servicios de dominio puros del ciclo de vida
// de órdenes de trabajo: la máquina de estados y el cálculo de costos.
package workorder

import (
	"time"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// Tabla de transiciones permitidas:
//
//	reported    -> assigned, cancelled
//	assigned    -> in_progress, cancelled
//	in_progress -> completed, cancelled
//	completed   -> (terminal)
//	cancelled   -> (terminal)
var transitions = map[string][]string{
	entity.StatusReported:   {entity.StatusAssigned, entity.StatusCancelled},
	entity.StatusAssigned:   {entity.StatusInProgress, entity.StatusCancelled},
	entity.StatusInProgress: {entity.StatusCompleted, entity.StatusCancelled},
	entity.StatusCompleted:  {},
	entity.StatusCancelled:  {},
}

// CanTransition indica si la transición from -> to está en la tabla.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ValidStatus valida que el estado exista en la tabla.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// Transition aplica la transición sobre la orden en memoria, validando tabla
// y guardas. Ante error la orden queda intacta: nunca se aplica a medias.
// El caller (caso de uso) persiste el resultado bajo el check de versión y,
// para in_progress -> completed, recalcula costos en la misma operación.
func Transition(order *entity.WorkOrder, target string, now time.Time) error {
	if !ValidStatus(target) {
		return domain.ErrInvalidInput
	}
	if !CanTransition(order.Status, target) {
		return domain.ErrInvalidTransition
	}

	switch target {
	case entity.StatusAssigned:
		// La asignación de técnico y la transición se aplican juntas:
		// el caso de uso setea TechnicianID antes de llamar aquí.
		if order.TechnicianID == "" {
			return domain.ErrTechnicianRequired
		}
	case entity.StatusInProgress:
		if order.TechnicianID == "" {
			return domain.ErrTechnicianRequired
		}
		started := now
		order.DateStarted = &started
	case entity.StatusCompleted:
		if order.Resolution == "" {
			return domain.ErrIncompleteResolution
		}
		if order.ActualMinutes <= 0 {
			// Derivable desde DateStarted si el caller no la registró.
			if order.DateStarted == nil {
				return domain.ErrInvalidInput
			}
			order.ActualMinutes = int(now.Sub(*order.DateStarted).Minutes())
			if order.ActualMinutes <= 0 {
				order.ActualMinutes = 1
			}
		}
		completed := now
		order.DateCompleted = &completed
	case entity.StatusCancelled:
		// Permitida desde cualquier estado no terminal, sin resolución.
	}

	order.Status = target
	order.UpdatedAt = now
	return nil
}
