package workorder

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

var sixty = decimal.NewFromInt(60)

// LaborCost calcula el costo de mano de obra:
// (minutos reales / 60) * tarifa horaria snapshot. 0 si falta duración o tarifa.
func LaborCost(actualMinutes int, hourlyRate decimal.Decimal) decimal.Decimal {
	if actualMinutes <= 0 || hourlyRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(actualMinutes)).Div(sixty).Mul(hourlyRate).Round(2)
}

// PartsCost suma Quantity*UnitPriceAtUse sobre los consumos vivos.
func PartsCost(usages []*entity.PartUsage) decimal.Decimal {
	total := decimal.Zero
	for _, u := range usages {
		total = total.Add(u.LineTotal())
	}
	return total
}

// Recompute recalcula los tres campos de costo de la orden a partir de sus
// consumos vivos. Es idempotente: sin mutaciones intermedias, dos llamadas
// producen los mismos totales. Nunca se calcula perezosamente en lectura;
// los casos de uso lo invocan y persisten el resultado en la misma operación.
func Recompute(order *entity.WorkOrder, usages []*entity.PartUsage) {
	order.LaborCost = LaborCost(order.ActualMinutes, order.HourlyRate)
	order.PartsCost = PartsCost(usages)
	order.TotalCost = order.LaborCost.Add(order.PartsCost)
}
