package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartUsage es el consumo de un repuesto contra una orden de trabajo.
// UnitPriceAtUse queda congelado al momento de adjuntar el repuesto: cambios
// posteriores del precio de catálogo nunca alteran costos históricos.
// Invariante: la suma de Quantity*UnitPriceAtUse de los consumos vivos de una
// orden es igual a su PartsCost en todo momento.
type PartUsage struct {
	ID             string
	WorkOrderID    string
	PartID         string
	Quantity       int // > 0
	UnitPriceAtUse decimal.Decimal
	CreatedAt      time.Time
	CreatedBy      string
}

// LineTotal devuelve Quantity * UnitPriceAtUse.
func (u *PartUsage) LineTotal() decimal.Decimal {
	return decimal.NewFromInt(int64(u.Quantity)).Mul(u.UnitPriceAtUse)
}
