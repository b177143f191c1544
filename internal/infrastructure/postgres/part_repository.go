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

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, name, reference, unit_price, stock, alert_threshold, supplier_ref, created_at, updated_at`

// PartRepo implementación del puerto PartRepository sobre PostgreSQL
// (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste un repuesto nuevo.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.Name, part.Reference, part.UnitPrice, part.Stock,
		part.AlertThreshold, part.SupplierRef, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

func (r *PartRepo) scanOne(query string, args ...any) (*entity.Part, error) {
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.Name, &p.Reference, &p.UnitPrice, &p.Stock,
		&p.AlertThreshold, &p.SupplierRef, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un repuesto por ID.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	return r.scanOne(`SELECT `+partColumns+` FROM parts WHERE id = $1`, id)
}

// GetByReference obtiene un repuesto por código de referencia.
func (r *PartRepo) GetByReference(reference string) (*entity.Part, error) {
	return r.scanOne(`SELECT `+partColumns+` FROM parts WHERE reference = $1`, reference)
}

// GetForUpdate obtiene el repuesto y bloquea la fila (SELECT FOR UPDATE).
// Este lock es la serialización por-repuesto del ledger.
func (r *PartRepo) GetForUpdate(id string) (*entity.Part, error) {
	return r.scanOne(`SELECT `+partColumns+` FROM parts WHERE id = $1 FOR UPDATE`, id)
}

// List lista el catálogo paginado por nombre.
func (r *PartRepo) List(limit, offset int) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts ORDER BY name LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// ListBelowThreshold lista los repuestos con stock en o bajo su umbral de alerta.
func (r *PartRepo) ListBelowThreshold() ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE stock <= alert_threshold ORDER BY stock`
	return r.scanMany(query)
}

func (r *PartRepo) scanMany(query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var out []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Reference, &p.UnitPrice, &p.Stock,
			&p.AlertThreshold, &p.SupplierRef, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update actualiza datos de catálogo. No toca stock: eso entra solo por el
// ledger vía UpdateStock.
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts SET name = $2, unit_price = $3, alert_threshold = $4, supplier_ref = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		part.ID, part.Name, part.UnitPrice, part.AlertThreshold, part.SupplierRef, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe la nueva cantidad. Solo el ledger lo invoca, con la
// fila ya bloqueada por GetForUpdate en la misma transacción.
func (r *PartRepo) UpdateStock(id string, stock int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE parts SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasUsages indica si algún consumo referencia al repuesto.
func (r *PartRepo) HasUsages(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM part_usages WHERE part_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check part usages: %w", err)
	}
	return exists, nil
}

// Delete elimina un repuesto. La FK de part_usages respalda la regla de
// no borrar repuestos referenciados.
func (r *PartRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPartInUse
		}
		return fmt.Errorf("delete part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
