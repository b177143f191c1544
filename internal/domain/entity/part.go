package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del catálogo de mantenimiento.
// UnitPrice es el precio de catálogo vigente; el precio histórico de cada
// consumo vive congelado en PartUsage.UnitPriceAtUse. Stock solo se modifica
// a través del ledger (application/inventory), nunca directamente.
type Part struct {
	ID             string
	Name           string
	Reference      string // código de referencia único
	UnitPrice      decimal.Decimal
	Stock          int // invariante: >= 0
	AlertThreshold int // umbral de alerta de stock bajo
	SupplierRef    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelowThreshold indica si el stock está en o por debajo del umbral de alerta.
func (p *Part) BelowThreshold() bool {
	return p.Stock <= p.AlertThreshold
}
