package workorder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenimiento-api/internal/application/workorder"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ciclo de vida de la orden: creación, asignación con snapshot de
// tarifa, transiciones persistidas bajo versión optimista y cancelación con
// devolución de consumos.
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OrdenNaceReported(t *testing.T) {
	e := newEnv()

	order, err := e.uc.Create(context.Background(), workorder.CreateInput{
		MachineID:        testMachineID,
		Type:             entity.TypeCorrective,
		Priority:         entity.PriorityHigh,
		Description:      "fuga de aceite",
		EstimatedMinutes: 90,
		ActorID:          testActorID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusReported, order.Status)
	assert.Equal(t, 1, order.Version)
	assert.Empty(t, order.TechnicianID)
	assert.True(t, decimal.Zero.Equal(order.TotalCost))

	stored := e.store.Order(order.ID)
	assert.Equal(t, entity.StatusReported, stored.Status)
}

func TestCreate_MaquinaInexistente(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Create(context.Background(), workorder.CreateInput{
		MachineID:   "no-existe",
		Type:        entity.TypeCorrective,
		Priority:    entity.PriorityLow,
		Description: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_TipoOPrioridadInvalida(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.uc.Create(ctx, workorder.CreateInput{
		MachineID: testMachineID, Type: "urgente", Priority: entity.PriorityLow, Description: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Create(ctx, workorder.CreateInput{
		MachineID: testMachineID, Type: entity.TypePreventive, Priority: "maxima", Description: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssignTechnician_SnapshotTarifaPorDefecto(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusReported)

	order, err := e.uc.AssignTechnician(context.Background(), testOrderID, testTechID, nil, testActorID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusAssigned, order.Status)
	assert.Equal(t, testTechID, order.TechnicianID)
	assert.True(t, dec("50").Equal(order.HourlyRate),
		"sin tarifa explícita se toma la del técnico")
	assert.Equal(t, 2, order.Version, "la escritura versionada incrementa Version")
}

func TestAssignTechnician_TarifaExplicita(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusReported)
	rate := dec("65")

	order, err := e.uc.AssignTechnician(context.Background(), testOrderID, testTechID, &rate, testActorID)
	require.NoError(t, err)
	assert.True(t, dec("65").Equal(order.HourlyRate))
}

func TestAssignTechnician_ReasignacionReSnapshotea(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusAssigned)
	e.store.SeedUser(entity.User{
		ID: "tech-2", Email: "tech2@example.com", Role: entity.RoleTechnician,
		HourlyRate: dec("80"), Status: "active",
	})

	order, err := e.uc.AssignTechnician(context.Background(), testOrderID, "tech-2", nil, testActorID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAssigned, order.Status, "reasignar no re-transiciona")
	assert.Equal(t, "tech-2", order.TechnicianID)
	assert.True(t, dec("80").Equal(order.HourlyRate))
}

func TestAssignTechnician_TecnicoInexistente(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusReported)
	_, err := e.uc.AssignTechnician(context.Background(), testOrderID, "no-existe", nil, testActorID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Cierre completo: orden de 120 minutos a 50/h con un repuesto de 30 debe
// cerrar con labor 100, parts 30, total 130.
func TestTransition_CompletarCalculaCostos(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusInProgress)
	e.seedPart(10, "30")
	ctx := context.Background()

	_, err := e.usageUC.AttachPart(ctx, testOrderID, testPartID, 1, testActorID)
	require.NoError(t, err)

	order, err := e.uc.TransitionStatus(ctx, testOrderID, workorder.TransitionInput{
		Target:        entity.StatusCompleted,
		Resolution:    "correa reemplazada",
		ActualMinutes: 120,
		ActorID:       testActorID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCompleted, order.Status)
	assert.True(t, dec("100").Equal(order.LaborCost), "2h * 50/h")
	assert.True(t, dec("30").Equal(order.PartsCost))
	assert.True(t, dec("130").Equal(order.TotalCost))
	require.NotNil(t, order.DateCompleted)
}

func TestTransition_CompletarSinResolucion(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusInProgress)

	_, err := e.uc.TransitionStatus(context.Background(), testOrderID, workorder.TransitionInput{
		Target:        entity.StatusCompleted,
		ActualMinutes: 60,
	})
	assert.ErrorIs(t, err, domain.ErrIncompleteResolution)
	assert.Equal(t, entity.StatusInProgress, e.store.Order(testOrderID).Status)
}

func TestTransition_SaltoInvalido(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusReported)

	_, err := e.uc.TransitionStatus(context.Background(), testOrderID, workorder.TransitionInput{
		Target: entity.StatusInProgress,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Cancelar sin void deja el stock consumido como está.
func TestTransition_CancelarSinVoidConservaConsumos(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusInProgress)
	e.seedPart(10, "20")
	ctx := context.Background()

	_, err := e.usageUC.AttachPart(ctx, testOrderID, testPartID, 3, testActorID)
	require.NoError(t, err)

	order, err := e.uc.TransitionStatus(ctx, testOrderID, workorder.TransitionInput{
		Target: entity.StatusCancelled,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCancelled, order.Status)
	assert.Equal(t, 7, e.store.PartStock(testPartID), "el stock consumido no se devuelve")
	assert.Len(t, e.store.Usages(testOrderID), 1)
}

// Cancelar con void acredita de vuelta todos los consumos en una sola
// transacción y deja PartsCost en cero.
func TestTransition_CancelarConVoidDevuelveStock(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusInProgress)
	e.seedPart(10, "20")
	e.store.SeedPart(entity.Part{
		ID: "part-2", Name: "Tornillo M8", Reference: "TOR-008",
		UnitPrice: dec("2"), Stock: 50, AlertThreshold: 10,
	})
	ctx := context.Background()

	_, err := e.usageUC.AttachPart(ctx, testOrderID, testPartID, 3, testActorID)
	require.NoError(t, err)
	_, err = e.usageUC.AttachPart(ctx, testOrderID, "part-2", 10, testActorID)
	require.NoError(t, err)

	order, err := e.uc.TransitionStatus(ctx, testOrderID, workorder.TransitionInput{
		Target:  entity.StatusCancelled,
		Void:    true,
		ActorID: testActorID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCancelled, order.Status)
	assert.True(t, decimal.Zero.Equal(order.PartsCost))
	assert.Equal(t, 10, e.store.PartStock(testPartID), "stock devuelto")
	assert.Equal(t, 50, e.store.PartStock("part-2"), "stock devuelto")
	assert.Empty(t, e.store.Usages(testOrderID))

	// 2 débitos de adjuntar + 2 créditos del void, todos auditables.
	moves := e.store.Movements()
	require.Len(t, moves, 4)
	var voidCredits int
	for _, m := range moves {
		if m.Kind == entity.MovementCredit && m.Reason == entity.ReasonWorkOrderVoid {
			voidCredits++
		}
	}
	assert.Equal(t, 2, voidCredits)
}

func TestTransition_CancelarOrdenTerminalRechazado(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusCompleted)

	_, err := e.uc.TransitionStatus(context.Background(), testOrderID, workorder.TransitionInput{
		Target: entity.StatusCancelled,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestGet_DevuelveOrdenConConsumos(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusInProgress)
	e.seedPart(10, "20")
	ctx := context.Background()

	_, err := e.usageUC.AttachPart(ctx, testOrderID, testPartID, 2, testActorID)
	require.NoError(t, err)

	snap, err := e.uc.Get(ctx, testOrderID)
	require.NoError(t, err)
	assert.Equal(t, testOrderID, snap.Order.ID)
	require.Len(t, snap.Usages, 1)
	assert.Equal(t, 2, snap.Usages[0].Quantity)
}

func TestList_FiltroPorEstadoInvalido(t *testing.T) {
	e := newEnv()
	_, err := e.uc.List(context.Background(), repository.WorkOrderFilter{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_FiltraPorTecnico(t *testing.T) {
	e := newEnv()
	e.seedOrder(entity.StatusAssigned)
	e.store.SeedOrder(entity.WorkOrder{
		ID: "wo-2", Status: entity.StatusReported, Type: entity.TypePreventive,
		Priority: entity.PriorityLow, MachineID: testMachineID, Version: 1,
	})

	orders, err := e.uc.List(context.Background(), repository.WorkOrderFilter{TechnicianID: testTechID})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, testOrderID, orders[0].ID)
}

// ── RetryOnConflict ──────────────────────────────────────────────────────────

func TestRetryOnConflict_ReintentaHastaExito(t *testing.T) {
	attempts := 0
	err := workorder.RetryOnConflict(func() error {
		attempts++
		if attempts < 3 {
			return domain.ErrConcurrentModification
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryOnConflict_AgotaIntentos(t *testing.T) {
	attempts := 0
	err := workorder.RetryOnConflict(func() error {
		attempts++
		return domain.ErrConcurrentModification
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
	assert.Equal(t, workorder.ConflictRetries, attempts)
}

func TestRetryOnConflict_OtroErrorNoReintenta(t *testing.T) {
	attempts := 0
	sentinel := errors.New("boom")
	err := workorder.RetryOnConflict(func() error {
		attempts++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, attempts)
}
