package workorder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/workorder"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la máquina de estados del ciclo de vida:
//
//	reported -> assigned -> in_progress -> completed
//	cualquier estado no terminal -> cancelled
//
// Una transición inválida debe fallar con error tipado y dejar la orden
// exactamente como estaba.
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_Tabla(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.StatusReported, entity.StatusAssigned, true},
		{entity.StatusReported, entity.StatusCancelled, true},
		{entity.StatusReported, entity.StatusInProgress, false},
		{entity.StatusReported, entity.StatusCompleted, false},
		{entity.StatusAssigned, entity.StatusInProgress, true},
		{entity.StatusAssigned, entity.StatusCancelled, true},
		{entity.StatusAssigned, entity.StatusCompleted, false},
		{entity.StatusAssigned, entity.StatusReported, false},
		{entity.StatusInProgress, entity.StatusCompleted, true},
		{entity.StatusInProgress, entity.StatusCancelled, true},
		{entity.StatusInProgress, entity.StatusAssigned, false},
		{entity.StatusCompleted, entity.StatusInProgress, false},
		{entity.StatusCompleted, entity.StatusCancelled, false},
		{entity.StatusCancelled, entity.StatusReported, false},
		{entity.StatusCancelled, entity.StatusAssigned, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, workorder.CanTransition(tc.from, tc.to),
			"transición %s -> %s", tc.from, tc.to)
	}
}

func TestTransition_FlujoCompleto(t *testing.T) {
	now := time.Now()
	order := &entity.WorkOrder{
		Status:       entity.StatusReported,
		TechnicianID: "tech-1",
		Resolution:   "bomba reemplazada",
	}

	require.NoError(t, workorder.Transition(order, entity.StatusAssigned, now))
	assert.Equal(t, entity.StatusAssigned, order.Status)

	require.NoError(t, workorder.Transition(order, entity.StatusInProgress, now))
	assert.Equal(t, entity.StatusInProgress, order.Status)
	require.NotNil(t, order.DateStarted, "in_progress debe registrar DateStarted")

	later := now.Add(90 * time.Minute)
	require.NoError(t, workorder.Transition(order, entity.StatusCompleted, later))
	assert.Equal(t, entity.StatusCompleted, order.Status)
	require.NotNil(t, order.DateCompleted)
	assert.Equal(t, 90, order.ActualMinutes,
		"sin duración registrada, se deriva de DateStarted")
}

func TestTransition_SaltoInvalidoDejaOrdenIntacta(t *testing.T) {
	order := &entity.WorkOrder{Status: entity.StatusReported}
	saved := *order

	err := workorder.Transition(order, entity.StatusCompleted, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, saved, *order, "ante error la orden no debe mutar")
}

func TestTransition_RetrocesoDesdeCompletedRechazado(t *testing.T) {
	order := &entity.WorkOrder{Status: entity.StatusCompleted}
	err := workorder.Transition(order, entity.StatusInProgress, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_AssignedSinTecnicoFalla(t *testing.T) {
	order := &entity.WorkOrder{Status: entity.StatusReported}
	err := workorder.Transition(order, entity.StatusAssigned, time.Now())
	assert.ErrorIs(t, err, domain.ErrTechnicianRequired)
	assert.Equal(t, entity.StatusReported, order.Status)
}

func TestTransition_CompletedSinResolucionFalla(t *testing.T) {
	started := time.Now().Add(-time.Hour)
	order := &entity.WorkOrder{
		Status:       entity.StatusInProgress,
		TechnicianID: "tech-1",
		DateStarted:  &started,
	}
	err := workorder.Transition(order, entity.StatusCompleted, time.Now())
	assert.ErrorIs(t, err, domain.ErrIncompleteResolution)
	assert.Equal(t, entity.StatusInProgress, order.Status)
	assert.Nil(t, order.DateCompleted)
}

func TestTransition_CompletedConDuracionExplicita(t *testing.T) {
	started := time.Now().Add(-3 * time.Hour)
	order := &entity.WorkOrder{
		Status:        entity.StatusInProgress,
		TechnicianID:  "tech-1",
		Resolution:    "rodamiento cambiado",
		ActualMinutes: 45,
		DateStarted:   &started,
	}
	require.NoError(t, workorder.Transition(order, entity.StatusCompleted, time.Now()))
	assert.Equal(t, 45, order.ActualMinutes,
		"la duración explícita tiene prioridad sobre la derivada")
}

func TestTransition_CancelledDesdeCualquierNoTerminal(t *testing.T) {
	for _, from := range []string{entity.StatusReported, entity.StatusAssigned, entity.StatusInProgress} {
		order := &entity.WorkOrder{Status: from, TechnicianID: "tech-1"}
		require.NoError(t, workorder.Transition(order, entity.StatusCancelled, time.Now()),
			"cancelar desde %s debe ser válido", from)
		assert.Equal(t, entity.StatusCancelled, order.Status)
	}
}

func TestTransition_CancelledNoRequiereResolucion(t *testing.T) {
	order := &entity.WorkOrder{Status: entity.StatusInProgress, TechnicianID: "tech-1"}
	assert.NoError(t, workorder.Transition(order, entity.StatusCancelled, time.Now()))
}

func TestTransition_EstadoDesconocidoFalla(t *testing.T) {
	order := &entity.WorkOrder{Status: entity.StatusReported}
	err := workorder.Transition(order, "archived", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, workorder.ValidStatus(entity.StatusReported))
	assert.True(t, workorder.ValidStatus(entity.StatusCancelled))
	assert.False(t, workorder.ValidStatus("archived"))
	assert.False(t, workorder.ValidStatus(""))
}
