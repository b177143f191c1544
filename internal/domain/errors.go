package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Todos son recuperables: se devuelven tipados al caller y el motor nunca
// hace panic por ellos. La única excepción es una violación interna del
// ledger (ver application/inventory), que sí es fatal.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidQuantity        = errors.New("cantidad inválida")
	ErrInvalidTransition      = errors.New("transición de estado no permitida")
	ErrIncompleteResolution   = errors.New("resolución requerida para completar la orden")
	ErrWorkOrderTerminal      = errors.New("la orden de trabajo está en estado terminal")
	ErrWorkOrderNotCompleted  = errors.New("la orden de trabajo no está completada")
	ErrAlreadyConfirmed       = errors.New("la confirmación ya fue registrada")
	ErrConcurrentModification = errors.New("la orden fue modificada por otra operación")
	ErrPartInUse              = errors.New("el repuesto tiene consumos asociados")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrTechnicianRequired     = errors.New("se requiere un técnico asignado")
)
