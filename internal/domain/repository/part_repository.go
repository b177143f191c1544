package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// PartRepository define el puerto de persistencia del catálogo de repuestos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE): es la serialización
// por-repuesto del ledger: todos los débitos/créditos del mismo repuesto se
// serializan entre sí; repuestos distintos avanzan en paralelo.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetByReference(reference string) (*entity.Part, error)
	List(limit, offset int) ([]*entity.Part, error)
	ListBelowThreshold() ([]*entity.Part, error)
	// Update actualiza datos de catálogo (nombre, precio, umbral). No toca Stock.
	Update(part *entity.Part) error
	// UpdateStock escribe la nueva cantidad. Solo el ledger lo invoca, dentro
	// de una transacción con la fila bloqueada.
	UpdateStock(id string, stock int) error
	GetForUpdate(id string) (*entity.Part, error)
	// Delete elimina un repuesto nunca referenciado por un consumo.
	Delete(id string) error
	HasUsages(id string) (bool, error)
}
