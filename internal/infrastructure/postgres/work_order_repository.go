package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

const workOrderColumns = `id, status, type, priority, machine_id, technician_id, description, resolution,
	estimated_minutes, actual_minutes, hourly_rate, parts_cost, labor_cost, total_cost,
	tech_confirmed, tech_confirmed_at, client_confirmed, client_confirmed_at, signature_ref, signer_name,
	version, date_reported, date_started, date_completed, created_by, updated_at`

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// Create persiste una orden nueva (version 1).
func (r *WorkOrderRepo) Create(w *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8,
			$9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.Status, w.Type, w.Priority, w.MachineID, w.TechnicianID, w.Description, w.Resolution,
		w.EstimatedMinutes, w.ActualMinutes, w.HourlyRate, w.PartsCost, w.LaborCost, w.TotalCost,
		w.TechConfirmed, w.TechConfirmedAt, w.ClientConfirmed, w.ClientConfirmedAt, w.SignatureRef, w.SignerName,
		w.Version, w.DateReported, w.DateStarted, w.DateCompleted, w.CreatedBy, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	w, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return w, nil
}

// List lista órdenes según filtro, más recientes primero.
func (r *WorkOrderRepo) List(filter repository.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.TechnicianID != "" {
		args = append(args, filter.TechnicianID)
		query += ` AND technician_id = $` + strconv.Itoa(len(args))
	}
	if filter.MachineID != "" {
		args = append(args, filter.MachineID)
		query += ` AND machine_id = $` + strconv.Itoa(len(args))
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	args = append(args, filter.Limit)
	query += ` ORDER BY date_reported DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.WorkOrder
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// UpdateVersioned escribe todos los campos mutables con check optimista:
// WHERE id AND version, incrementando version en la misma sentencia. Cero
// filas afectadas significa que otra operación ganó la carrera.
func (r *WorkOrderRepo) UpdateVersioned(w *entity.WorkOrder) error {
	query := `
		UPDATE work_orders SET
			status = $3, technician_id = NULLIF($4, ''), resolution = $5,
			estimated_minutes = $6, actual_minutes = $7, hourly_rate = $8,
			parts_cost = $9, labor_cost = $10, total_cost = $11,
			tech_confirmed = $12, tech_confirmed_at = $13,
			client_confirmed = $14, client_confirmed_at = $15,
			signature_ref = $16, signer_name = $17,
			date_started = $18, date_completed = $19,
			version = version + 1, updated_at = $20
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		w.ID, w.Version,
		w.Status, w.TechnicianID, w.Resolution,
		w.EstimatedMinutes, w.ActualMinutes, w.HourlyRate,
		w.PartsCost, w.LaborCost, w.TotalCost,
		w.TechConfirmed, w.TechConfirmedAt,
		w.ClientConfirmed, w.ClientConfirmedAt,
		w.SignatureRef, w.SignerName,
		w.DateStarted, w.DateCompleted,
		w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// La orden existe pero con otra versión, o no existe.
		existing, err := r.GetByID(w.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrConcurrentModification
	}
	w.Version++
	return nil
}

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var w entity.WorkOrder
	var technicianID, resolution, signatureRef, signerName *string
	err := row.Scan(
		&w.ID, &w.Status, &w.Type, &w.Priority, &w.MachineID, &technicianID, &w.Description, &resolution,
		&w.EstimatedMinutes, &w.ActualMinutes, &w.HourlyRate, &w.PartsCost, &w.LaborCost, &w.TotalCost,
		&w.TechConfirmed, &w.TechConfirmedAt, &w.ClientConfirmed, &w.ClientConfirmedAt, &signatureRef, &signerName,
		&w.Version, &w.DateReported, &w.DateStarted, &w.DateCompleted, &w.CreatedBy, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if technicianID != nil {
		w.TechnicianID = *technicianID
	}
	if resolution != nil {
		w.Resolution = *resolution
	}
	if signatureRef != nil {
		w.SignatureRef = *signatureRef
	}
	if signerName != nil {
		w.SignerName = *signerName
	}
	return &w, nil
}
