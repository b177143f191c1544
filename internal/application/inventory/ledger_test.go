package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenimiento-api/internal/application/apptest"
	"github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ledger de stock: todo cambio de cantidad produce exactamente un
// movimiento inmutable con before/after reconciliados, y reproducir el log
// desde el stock inicial reconstruye el stock actual exacto.
// ──────────────────────────────────────────────────────────────────────────────

const testPartID = "part-1"

func newLedger(initialStock int) (*inventory.LedgerUseCase, *apptest.Store) {
	store := apptest.NewStore()
	store.SeedPart(entity.Part{
		ID:             testPartID,
		Name:           "Filtro de aceite",
		Reference:      "FIL-001",
		UnitPrice:      decimal.RequireFromString("20"),
		Stock:          initialStock,
		AlertThreshold: 2,
	})
	uc := inventory.NewLedgerUseCase(
		apptest.NewTxRunner(store),
		apptest.NewPartRepo(store),
		apptest.NewMovementRepo(store),
	)
	return uc, store
}

func TestDebit_DescuentaYRegistraMovimiento(t *testing.T) {
	uc, store := newLedger(10)

	mov, err := uc.Debit(context.Background(), inventory.MovementInput{
		PartID:   testPartID,
		Quantity: 3,
		Reason:   entity.ReasonWorkOrderUse,
		ActorID:  "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementDebit, mov.Kind)
	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 7, mov.StockAfter)
	assert.Equal(t, "user-1", mov.CreatedBy)
	assert.Equal(t, 7, store.PartStock(testPartID))
	assert.Len(t, store.Movements(), 1, "exactamente un movimiento por débito")
}

func TestCredit_ReponeYRegistraMovimiento(t *testing.T) {
	uc, store := newLedger(5)

	mov, err := uc.Credit(context.Background(), inventory.MovementInput{
		PartID:   testPartID,
		Quantity: 4,
		Reason:   entity.ReasonManualRestock,
		ActorID:  "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementCredit, mov.Kind)
	assert.Equal(t, 5, mov.StockBefore)
	assert.Equal(t, 9, mov.StockAfter)
	assert.Equal(t, 9, store.PartStock(testPartID))
}

func TestDebit_StockInsuficienteNoCambiaNada(t *testing.T) {
	uc, store := newLedger(2)

	_, err := uc.Debit(context.Background(), inventory.MovementInput{
		PartID:   testPartID,
		Quantity: 5,
		Reason:   entity.ReasonWorkOrderUse,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, store.PartStock(testPartID), "el stock no debe cambiar")
	assert.Empty(t, store.Movements(), "no debe quedar ningún movimiento")
}

func TestDebit_CantidadInvalida(t *testing.T) {
	uc, _ := newLedger(10)

	for _, qty := range []int{0, -3} {
		_, err := uc.Debit(context.Background(), inventory.MovementInput{
			PartID:   testPartID,
			Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d", qty)
	}
}

func TestCredit_CantidadInvalida(t *testing.T) {
	uc, _ := newLedger(10)
	_, err := uc.Credit(context.Background(), inventory.MovementInput{
		PartID:   testPartID,
		Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestDebit_RepuestoInexistente(t *testing.T) {
	uc, _ := newLedger(10)
	_, err := uc.Debit(context.Background(), inventory.MovementInput{
		PartID:   "no-existe",
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Reproducir el log de movimientos desde el stock inicial reconstruye el
// stock actual, y cada movimiento reconcilia con el anterior.
func TestLedger_ReplayReconstruyeStock(t *testing.T) {
	uc, store := newLedger(10)
	ctx := context.Background()

	ops := []struct {
		debit bool
		qty   int
	}{
		{true, 3}, {true, 2}, {false, 4}, {true, 6}, {false, 1},
	}
	for _, op := range ops {
		var err error
		if op.debit {
			_, err = uc.Debit(ctx, inventory.MovementInput{PartID: testPartID, Quantity: op.qty, Reason: entity.ReasonWorkOrderUse})
		} else {
			_, err = uc.Credit(ctx, inventory.MovementInput{PartID: testPartID, Quantity: op.qty, Reason: entity.ReasonManualRestock})
		}
		require.NoError(t, err)
	}

	moves := store.Movements()
	require.Len(t, moves, len(ops))

	replayed := 10
	for i, m := range moves {
		assert.Equal(t, replayed, m.StockBefore, "movimiento %d: before debe encadenar", i)
		if m.Kind == entity.MovementDebit {
			replayed -= m.Quantity
		} else {
			replayed += m.Quantity
		}
		assert.Equal(t, replayed, m.StockAfter, "movimiento %d: after debe reconciliar", i)
		assert.GreaterOrEqual(t, m.StockAfter, 0, "el stock nunca es negativo")
	}
	assert.Equal(t, replayed, store.PartStock(testPartID),
		"reproducir el log debe dar el stock actual")
}

// Débitos concurrentes sobre el mismo repuesto se serializan: con stock 1 y
// dos débitos simultáneos de 1, exactamente uno gana.
func TestDebit_ConcurrenciaUltimaUnidad(t *testing.T) {
	uc, store := newLedger(1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Debit(context.Background(), inventory.MovementInput{
				PartID:   testPartID,
				Quantity: 1,
				Reason:   entity.ReasonWorkOrderUse,
			})
		}(i)
	}
	wg.Wait()

	var okCount, insufficientCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficientCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un débito debe ganar")
	assert.Equal(t, 1, insufficientCount, "el otro debe fallar por stock insuficiente")
	assert.Equal(t, 0, store.PartStock(testPartID))
	assert.Len(t, store.Movements(), 1, "solo el débito ganador deja movimiento")
}

func TestListMovements_FiltraPorRepuesto(t *testing.T) {
	uc, store := newLedger(10)
	store.SeedPart(entity.Part{ID: "part-2", Reference: "FIL-002", Stock: 10, UnitPrice: decimal.Zero})
	ctx := context.Background()

	_, err := uc.Debit(ctx, inventory.MovementInput{PartID: testPartID, Quantity: 1, Reason: entity.ReasonWorkOrderUse})
	require.NoError(t, err)
	_, err = uc.Debit(ctx, inventory.MovementInput{PartID: "part-2", Quantity: 2, Reason: entity.ReasonWorkOrderUse})
	require.NoError(t, err)

	movs, err := uc.ListMovements(ctx, testPartID, nil, nil, 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, testPartID, movs[0].PartID)
}

func TestListMovements_RepuestoInexistente(t *testing.T) {
	uc, _ := newLedger(10)
	_, err := uc.ListMovements(context.Background(), "no-existe", nil, nil, 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCurrentStock(t *testing.T) {
	uc, _ := newLedger(7)
	stock, err := uc.CurrentStock(context.Background(), testPartID)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}
