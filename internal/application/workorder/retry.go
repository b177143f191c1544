package workorder

import (
	"errors"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
)

// ConflictRetries intentos acotados ante ErrConcurrentModification antes de
// devolver el conflicto al usuario.
const ConflictRetries = 3

// RetryOnConflict reintenta fn mientras falle con ErrConcurrentModification,
// hasta ConflictRetries veces. fn debe releer el estado en cada intento (los
// casos de uso lo hacen: cada llamada recarga la orden).
func RetryOnConflict(fn func() error) error {
	var err error
	for i := 0; i < ConflictRetries; i++ {
		err = fn()
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return err
		}
	}
	return err
}
