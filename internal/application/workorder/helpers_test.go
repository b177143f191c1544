package workorder_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/application/apptest"
	"github.com/jhoicas/Mantenimiento-api/internal/application/workorder"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// Helpers compartidos por los tests del ciclo de vida, consumos y
// confirmaciones.

const (
	testOrderID   = "wo-1"
	testMachineID = "machine-1"
	testTechID    = "tech-1"
	testActorID   = "actor-1"
	testPartID    = "part-1"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type env struct {
	store     *apptest.Store
	uc        *workorder.UseCase
	usageUC   *workorder.UsageUseCase
	confirmUC *workorder.ConfirmationUseCase
}

func newEnv() *env {
	store := apptest.NewStore()
	store.SeedMachine(entity.Machine{ID: testMachineID, Name: "Prensa 4", Code: "PR-04"})
	store.SeedUser(entity.User{
		ID:         testTechID,
		Email:      "tech@example.com",
		Name:       "Técnico Uno",
		Role:       entity.RoleTechnician,
		HourlyRate: dec("50"),
		Status:     "active",
	})
	txRunner := apptest.NewTxRunner(store)
	uc := workorder.NewUseCase(
		txRunner,
		apptest.NewWorkOrderRepo(store),
		apptest.NewUsageRepo(store),
		apptest.NewMachineRepo(store),
		apptest.NewUserRepo(store),
	)
	return &env{
		store:     store,
		uc:        uc,
		usageUC:   workorder.NewUsageUseCase(txRunner),
		confirmUC: workorder.NewConfirmationUseCase(apptest.NewWorkOrderRepo(store)),
	}
}

// seedOrder carga una orden en el estado indicado, lista para operar.
func (e *env) seedOrder(status string) {
	started := time.Now().Add(-2 * time.Hour)
	order := entity.WorkOrder{
		ID:           testOrderID,
		Status:       status,
		Type:         entity.TypeCorrective,
		Priority:     entity.PriorityHigh,
		MachineID:    testMachineID,
		Description:  "vibración excesiva",
		HourlyRate:   dec("50"),
		PartsCost:    decimal.Zero,
		LaborCost:    decimal.Zero,
		TotalCost:    decimal.Zero,
		Version:      1,
		DateReported: time.Now().Add(-3 * time.Hour),
	}
	switch status {
	case entity.StatusAssigned:
		order.TechnicianID = testTechID
	case entity.StatusInProgress:
		order.TechnicianID = testTechID
		order.DateStarted = &started
	case entity.StatusCompleted:
		order.TechnicianID = testTechID
		order.DateStarted = &started
		order.Resolution = "correa reemplazada"
		order.ActualMinutes = 120
		completed := time.Now().Add(-time.Hour)
		order.DateCompleted = &completed
	}
	e.store.SeedOrder(order)
}

// seedPart carga un repuesto con stock y precio de catálogo.
func (e *env) seedPart(stock int, unitPrice string) {
	e.store.SeedPart(entity.Part{
		ID:             testPartID,
		Name:           "Correa trapezoidal",
		Reference:      "COR-001",
		UnitPrice:      dec(unitPrice),
		Stock:          stock,
		AlertThreshold: 2,
	})
}

// setPartPrice cambia solo el precio de catálogo conservando el stock.
func (e *env) setPartPrice(price string) {
	part := entity.Part{
		ID:             testPartID,
		Name:           "Correa trapezoidal",
		Reference:      "COR-001",
		UnitPrice:      dec(price),
		Stock:          e.store.PartStock(testPartID),
		AlertThreshold: 2,
	}
	e.store.SeedPart(part)
}
