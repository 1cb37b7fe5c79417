package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

func newTxStoreEnv() (*ledger.TxStore, *fakeLedgerRepo, *entity.LedgerEntry) {
	e := activeEntry()
	repo := &fakeLedgerRepo{entries: map[string]*entity.LedgerEntry{
		entryKey(e.ProductID, e.WarehouseID, ""): e,
	}}
	return ledger.NewTxStore(repo), repo, e
}

// SetStock es la única primitiva de mutación: cada escritura deja TotalValue
// consistente con stock * costo y sella LastMovementAt.
func TestTxStore_SetStockMantieneElValorConsistente(t *testing.T) {
	store, _, e := newTxStoreEnv()
	nuevoCosto := decimal.NewFromInt(12)

	require.NoError(t, store.SetStock(context.Background(), e, decimal.NewFromInt(120), &nuevoCosto))

	assert.True(t, decimal.NewFromInt(120).Equal(e.AvailableStock))
	assert.True(t, decimal.NewFromInt(12).Equal(e.UnitCost))
	assert.True(t, decimal.NewFromInt(1440).Equal(e.TotalValue))
	assert.NotNil(t, e.LastMovementAt)
}

func TestTxStore_SetStockRechazaNegativos(t *testing.T) {
	store, _, e := newTxStoreEnv()

	err := store.SetStock(context.Background(), e, decimal.NewFromInt(-1), nil)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	costoNegativo := decimal.NewFromInt(-5)
	err = store.SetStock(context.Background(), e, decimal.NewFromInt(10), &costoNegativo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTxStore_ReserveYReleaseConservanElTotal(t *testing.T) {
	store, _, e := newTxStoreEnv()
	ctx := context.Background()
	total := e.CurrentStock()

	require.NoError(t, store.Reserve(ctx, e, decimal.NewFromInt(20)))
	assert.True(t, decimal.NewFromInt(30).Equal(e.AvailableStock))
	assert.True(t, decimal.NewFromInt(20).Equal(e.ReservedStock))
	assert.True(t, total.Equal(e.CurrentStock()), "reservar no cambia el total")

	require.NoError(t, store.Release(ctx, e, decimal.NewFromInt(20)))
	assert.True(t, decimal.NewFromInt(50).Equal(e.AvailableStock))
	assert.True(t, e.ReservedStock.IsZero())
	assert.True(t, total.Equal(e.CurrentStock()))
}

func TestTxStore_ReserveMasDelDisponibleFalla(t *testing.T) {
	store, _, e := newTxStoreEnv()

	err := store.Reserve(context.Background(), e, decimal.NewFromInt(51))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTxStore_ReleaseMasDeLoReservadoFalla(t *testing.T) {
	store, _, e := newTxStoreEnv()
	ctx := context.Background()

	require.NoError(t, store.Reserve(ctx, e, decimal.NewFromInt(10)))
	err := store.Release(ctx, e, decimal.NewFromInt(11))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTxStore_CreateEntryAsignaIDYRecalculaValor(t *testing.T) {
	store, repo, _ := newTxStoreEnv()
	nuevo := &entity.LedgerEntry{
		ProductID:      "cascarilla",
		WarehouseID:    "w-1",
		AvailableStock: decimal.NewFromInt(40),
		UnitCost:       decimal.NewFromInt(2),
	}

	require.NoError(t, store.CreateEntry(context.Background(), nuevo))

	assert.NotEmpty(t, nuevo.ID)
	assert.True(t, nuevo.IsActive)
	assert.True(t, decimal.NewFromInt(80).Equal(nuevo.TotalValue))
	assert.Contains(t, repo.entries, entryKey("cascarilla", "w-1", ""))
}
