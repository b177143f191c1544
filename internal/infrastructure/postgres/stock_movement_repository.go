package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, part_id, kind, quantity, stock_before, stock_after, reason, work_order_id, created_at, created_by`

// StockMovementRepo implementación del log append-only de movimientos sobre
// PostgreSQL. Sin UPDATE ni DELETE: los movimientos son inmutables.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append agrega un movimiento al log.
func (r *StockMovementRepo) Append(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.PartID, m.Kind, m.Quantity, m.StockBefore, m.StockAfter,
		m.Reason, m.WorkOrderID, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

// ListByPart devuelve el log de un repuesto ordenado por fecha.
func (r *StockMovementRepo) ListByPart(partID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE part_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at, id
		LIMIT $4 OFFSET $5`
	return r.scanMany(query, partID, from, to, limit, offset)
}

// ListByWorkOrder devuelve los movimientos cuya razón referencia a la orden
// (trazabilidad de auditoría, no propiedad).
func (r *StockMovementRepo) ListByWorkOrder(workOrderID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE work_order_id = $1
		ORDER BY created_at, id`
	return r.scanMany(query, workOrderID)
}

func (r *StockMovementRepo) scanMany(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var workOrderID *string
		if err := rows.Scan(
			&m.ID, &m.PartID, &m.Kind, &m.Quantity, &m.StockBefore, &m.StockAfter,
			&m.Reason, &workOrderID, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if workOrderID != nil {
			m.WorkOrderID = *workOrderID
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
