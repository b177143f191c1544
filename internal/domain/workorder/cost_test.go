package workorder_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/workorder"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del cálculo de costos:
//
//	LaborCost = (minutos reales / 60) * tarifa horaria snapshot
//	PartsCost = Σ cantidad * precio unitario congelado
//	TotalCost = LaborCost + PartsCost
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLaborCost(t *testing.T) {
	cases := []struct {
		name    string
		minutes int
		rate    string
		want    string
	}{
		{"dos horas exactas", 120, "50", "100"},
		{"hora y media", 90, "50", "75"},
		{"minutos sueltos redondean a 2 decimales", 100, "50", "83.33"},
		{"sin duración", 0, "50", "0"},
		{"sin tarifa", 120, "0", "0"},
		{"tarifa con decimales", 60, "37.50", "37.50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := workorder.LaborCost(tc.minutes, dec(tc.rate))
			assert.True(t, dec(tc.want).Equal(got),
				"LaborCost(%d, %s) = %s, esperado %s", tc.minutes, tc.rate, got, tc.want)
		})
	}
}

func TestPartsCost_SumaPreciosCongelados(t *testing.T) {
	usages := []*entity.PartUsage{
		{Quantity: 3, UnitPriceAtUse: dec("20")},
		{Quantity: 2, UnitPriceAtUse: dec("25")},
	}
	assert.True(t, dec("110").Equal(workorder.PartsCost(usages)))
}

func TestPartsCost_SinConsumos(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(workorder.PartsCost(nil)))
}

func TestRecompute_TotalesCoherentes(t *testing.T) {
	order := &entity.WorkOrder{
		ActualMinutes: 120,
		HourlyRate:    dec("50"),
	}
	usages := []*entity.PartUsage{{Quantity: 1, UnitPriceAtUse: dec("30")}}

	workorder.Recompute(order, usages)

	assert.True(t, dec("100").Equal(order.LaborCost), "labor = 2h * 50")
	assert.True(t, dec("30").Equal(order.PartsCost))
	assert.True(t, dec("130").Equal(order.TotalCost))
}

// Recompute es idempotente: repetirlo sin mutaciones intermedias produce los
// mismos totales.
func TestRecompute_Idempotente(t *testing.T) {
	order := &entity.WorkOrder{ActualMinutes: 100, HourlyRate: dec("42.75")}
	usages := []*entity.PartUsage{
		{Quantity: 4, UnitPriceAtUse: dec("12.99")},
	}

	workorder.Recompute(order, usages)
	labor, parts, total := order.LaborCost, order.PartsCost, order.TotalCost

	workorder.Recompute(order, usages)
	assert.True(t, labor.Equal(order.LaborCost))
	assert.True(t, parts.Equal(order.PartsCost))
	assert.True(t, total.Equal(order.TotalCost))
}

func TestRecompute_SinConsumosDejaPartsEnCero(t *testing.T) {
	order := &entity.WorkOrder{
		ActualMinutes: 60,
		HourlyRate:    dec("40"),
		PartsCost:     dec("999"), // valor viejo que debe pisarse
	}
	workorder.Recompute(order, nil)
	assert.True(t, decimal.Zero.Equal(order.PartsCost))
	assert.True(t, dec("40").Equal(order.TotalCost))
}
