package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

var _ repository.PartUsageRepository = (*PartUsageRepo)(nil)

const usageColumns = `id, work_order_id, part_id, quantity, unit_price_at_use, created_at, created_by`

// PartUsageRepo implementación del puerto PartUsageRepository sobre
// PostgreSQL (usable con pool o tx).
type PartUsageRepo struct {
	q Querier
}

// NewPartUsageRepository construye el adaptador de consumos. Pasar pool o tx (Querier).
func NewPartUsageRepository(q Querier) *PartUsageRepo {
	return &PartUsageRepo{q: q}
}

// Create persiste un consumo con su precio congelado.
func (r *PartUsageRepo) Create(u *entity.PartUsage) error {
	query := `
		INSERT INTO part_usages (` + usageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.WorkOrderID, u.PartID, u.Quantity, u.UnitPriceAtUse, u.CreatedAt, u.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert part usage: %w", err)
	}
	return nil
}

// GetByID obtiene un consumo por ID.
func (r *PartUsageRepo) GetByID(id string) (*entity.PartUsage, error) {
	query := `SELECT ` + usageColumns + ` FROM part_usages WHERE id = $1`
	var u entity.PartUsage
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.WorkOrderID, &u.PartID, &u.Quantity, &u.UnitPriceAtUse, &u.CreatedAt, &u.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part usage: %w", err)
	}
	return &u, nil
}

// ListByWorkOrder devuelve los consumos vivos de una orden.
func (r *PartUsageRepo) ListByWorkOrder(workOrderID string) ([]*entity.PartUsage, error) {
	query := `SELECT ` + usageColumns + ` FROM part_usages WHERE work_order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list part usages: %w", err)
	}
	defer rows.Close()
	var out []*entity.PartUsage
	for rows.Next() {
		var u entity.PartUsage
		if err := rows.Scan(
			&u.ID, &u.WorkOrderID, &u.PartID, &u.Quantity, &u.UnitPriceAtUse, &u.CreatedAt, &u.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan part usage: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// UpdateQuantity ajusta la cantidad de un consumo. El precio congelado no se toca.
func (r *PartUsageRepo) UpdateQuantity(id string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE part_usages SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update part usage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un consumo (con su crédito compensatorio ya registrado por
// el caller en la misma transacción).
func (r *PartUsageRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM part_usages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part usage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
