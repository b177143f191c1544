package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// CreatePartRequest alta de repuesto en el catálogo.
type CreatePartRequest struct {
	Name           string          `json:"name"`
	Reference      string          `json:"reference"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	InitialStock   int             `json:"initial_stock"`
	AlertThreshold int             `json:"alert_threshold"`
	SupplierRef    string          `json:"supplier_ref"`
}

// UpdatePartRequest edición de catálogo. No toca stock (eso es del ledger).
type UpdatePartRequest struct {
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AlertThreshold int             `json:"alert_threshold"`
	SupplierRef    string          `json:"supplier_ref"`
}

// RestockRequest crédito manual de stock.
type RestockRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// PartResponse repuesto en respuestas.
type PartResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Reference      string          `json:"reference"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Stock          int             `json:"stock"`
	AlertThreshold int             `json:"alert_threshold"`
	SupplierRef    string          `json:"supplier_ref,omitempty"`
	BelowThreshold bool            `json:"below_threshold"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToPartResponse mapea entidad -> DTO.
func ToPartResponse(p *entity.Part) *PartResponse {
	return &PartResponse{
		ID:             p.ID,
		Name:           p.Name,
		Reference:      p.Reference,
		UnitPrice:      p.UnitPrice,
		Stock:          p.Stock,
		AlertThreshold: p.AlertThreshold,
		SupplierRef:    p.SupplierRef,
		BelowThreshold: p.BelowThreshold(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// StockMovementResponse movimiento en respuestas (log de auditoría).
type StockMovementResponse struct {
	ID          string    `json:"id"`
	PartID      string    `json:"part_id"`
	Kind        string    `json:"kind"`
	Quantity    int       `json:"quantity"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	Reason      string    `json:"reason"`
	WorkOrderID string    `json:"work_order_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
}

// ToStockMovementResponse mapea entidad -> DTO.
func ToStockMovementResponse(m *entity.StockMovement) *StockMovementResponse {
	return &StockMovementResponse{
		ID:          m.ID,
		PartID:      m.PartID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		WorkOrderID: m.WorkOrderID,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}
