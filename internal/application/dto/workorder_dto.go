package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// CreateWorkOrderRequest alta de orden de trabajo (estado reported).
type CreateWorkOrderRequest struct {
	MachineID        string `json:"machine_id"`
	Type             string `json:"type"`
	Priority         string `json:"priority"`
	Description      string `json:"description"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

// AssignTechnicianRequest asignación con snapshot de tarifa.
type AssignTechnicianRequest struct {
	TechnicianID string           `json:"technician_id"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
}

// TransitionRequest transición de estado.
type TransitionRequest struct {
	Target        string `json:"target"`
	Resolution    string `json:"resolution,omitempty"`
	ActualMinutes int    `json:"actual_minutes,omitempty"`
	Void          bool   `json:"void,omitempty"`
}

// AttachPartRequest consumo de repuesto.
type AttachPartRequest struct {
	PartID   string `json:"part_id"`
	Quantity int    `json:"quantity"`
}

// ChangeQuantityRequest ajuste de cantidad de un consumo.
type ChangeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ConfirmClientRequest conformidad del cliente.
type ConfirmClientRequest struct {
	SignatureRef string `json:"signature_ref,omitempty"`
	SignerName   string `json:"signer_name"`
}

// PartUsageResponse consumo en respuestas.
type PartUsageResponse struct {
	ID             string          `json:"id"`
	WorkOrderID    string          `json:"work_order_id"`
	PartID         string          `json:"part_id"`
	Quantity       int             `json:"quantity"`
	UnitPriceAtUse decimal.Decimal `json:"unit_price_at_use"`
	LineTotal      decimal.Decimal `json:"line_total"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToPartUsageResponse mapea entidad -> DTO.
func ToPartUsageResponse(u *entity.PartUsage) *PartUsageResponse {
	return &PartUsageResponse{
		ID:             u.ID,
		WorkOrderID:    u.WorkOrderID,
		PartID:         u.PartID,
		Quantity:       u.Quantity,
		UnitPriceAtUse: u.UnitPriceAtUse,
		LineTotal:      u.LineTotal(),
		CreatedAt:      u.CreatedAt,
	}
}

// WorkOrderResponse orden en respuestas.
type WorkOrderResponse struct {
	ID               string               `json:"id"`
	Status           string               `json:"status"`
	Type             string               `json:"type"`
	Priority         string               `json:"priority"`
	MachineID        string               `json:"machine_id"`
	TechnicianID     string               `json:"technician_id,omitempty"`
	Description      string               `json:"description"`
	Resolution       string               `json:"resolution,omitempty"`
	EstimatedMinutes int                  `json:"estimated_minutes"`
	ActualMinutes    int                  `json:"actual_minutes"`
	HourlyRate       decimal.Decimal      `json:"hourly_rate"`
	PartsCost        decimal.Decimal      `json:"parts_cost"`
	LaborCost        decimal.Decimal      `json:"labor_cost"`
	TotalCost        decimal.Decimal      `json:"total_cost"`
	TechConfirmed    bool                 `json:"tech_confirmed"`
	TechConfirmedAt  *time.Time           `json:"tech_confirmed_at,omitempty"`
	ClientConfirmed  bool                 `json:"client_confirmed"`
	ClientConfirmedAt *time.Time          `json:"client_confirmed_at,omitempty"`
	SignerName       string               `json:"signer_name,omitempty"`
	Version          int                  `json:"version"`
	DateReported     time.Time            `json:"date_reported"`
	DateStarted      *time.Time           `json:"date_started,omitempty"`
	DateCompleted    *time.Time           `json:"date_completed,omitempty"`
	Usages           []*PartUsageResponse `json:"usages,omitempty"`
}

// ToWorkOrderResponse mapea entidad -> DTO.
func ToWorkOrderResponse(w *entity.WorkOrder) *WorkOrderResponse {
	return &WorkOrderResponse{
		ID:                w.ID,
		Status:            w.Status,
		Type:              w.Type,
		Priority:          w.Priority,
		MachineID:         w.MachineID,
		TechnicianID:      w.TechnicianID,
		Description:       w.Description,
		Resolution:        w.Resolution,
		EstimatedMinutes:  w.EstimatedMinutes,
		ActualMinutes:     w.ActualMinutes,
		HourlyRate:        w.HourlyRate,
		PartsCost:         w.PartsCost,
		LaborCost:         w.LaborCost,
		TotalCost:         w.TotalCost,
		TechConfirmed:     w.TechConfirmed,
		TechConfirmedAt:   w.TechConfirmedAt,
		ClientConfirmed:   w.ClientConfirmed,
		ClientConfirmedAt: w.ClientConfirmedAt,
		SignerName:        w.SignerName,
		Version:           w.Version,
		DateReported:      w.DateReported,
		DateStarted:       w.DateStarted,
		DateCompleted:     w.DateCompleted,
	}
}

// ToWorkOrderResponseWithUsages incluye los consumos vivos.
func ToWorkOrderResponseWithUsages(w *entity.WorkOrder, usages []*entity.PartUsage) *WorkOrderResponse {
	resp := ToWorkOrderResponse(w)
	for _, u := range usages {
		resp.Usages = append(resp.Usages, ToPartUsageResponse(u))
	}
	return resp
}
