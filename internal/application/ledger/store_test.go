package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func entryKey(productID, warehouseID, zoneID string) string {
	return productID + "|" + warehouseID + "|" + zoneID
}

type fakeLedgerRepo struct {
	entries        map[string]*entity.LedgerEntry
	valuationCalls int
}

func (r *fakeLedgerRepo) Get(_ context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error) {
	e, ok := r.entries[entryKey(productID, warehouseID, zoneID)]
	if !ok {
		return nil, nil
	}
	return e, nil
}

func (r *fakeLedgerRepo) GetForUpdate(ctx context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error) {
	return r.Get(ctx, productID, warehouseID, zoneID)
}

func (r *fakeLedgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	key := entryKey(e.ProductID, e.WarehouseID, e.ZoneID)
	if _, ok := r.entries[key]; ok {
		return domain.ErrDuplicate
	}
	r.entries[key] = e
	return nil
}

func (r *fakeLedgerRepo) Update(_ context.Context, e *entity.LedgerEntry) error {
	r.entries[entryKey(e.ProductID, e.WarehouseID, e.ZoneID)] = e
	return nil
}

func (r *fakeLedgerRepo) Deactivate(_ context.Context, productID, warehouseID, zoneID string) error {
	e, ok := r.entries[entryKey(productID, warehouseID, zoneID)]
	if !ok {
		return domain.ErrLedgerNotFound
	}
	e.IsActive = false
	return nil
}

func (r *fakeLedgerRepo) ListActive(context.Context, string, int, int) ([]*entity.LedgerEntry, error) {
	return nil, nil
}
func (r *fakeLedgerRepo) ListLowStock(context.Context, string) ([]*entity.LedgerEntry, error) {
	return nil, nil
}
func (r *fakeLedgerRepo) ListOverstock(context.Context, string) ([]*entity.LedgerEntry, error) {
	return nil, nil
}
func (r *fakeLedgerRepo) ListReorder(context.Context, string) ([]*entity.LedgerEntry, error) {
	return nil, nil
}

func (r *fakeLedgerRepo) ValuationByWarehouse(context.Context) ([]repository.WarehouseValuation, error) {
	r.valuationCalls++
	return []repository.WarehouseValuation{
		{WarehouseID: "w-1", Entries: 2, TotalValue: decimal.NewFromInt(900)},
	}, nil
}

func (r *fakeLedgerRepo) TotalValuation(context.Context) (decimal.Decimal, error) {
	r.valuationCalls++
	return decimal.NewFromInt(900), nil
}

// fakeCache implementa ledger.QueryCache sobre un mapa, sin TTL real.
type fakeCache struct {
	values map[string][]repository.WarehouseValuation
}

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	p, ok := dest.(*[]repository.WarehouseValuation)
	if !ok {
		return false, nil
	}
	*p = v
	return true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if v, ok := value.([]repository.WarehouseValuation); ok {
		c.values[key] = v
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func activeEntry() *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:             "entry-1",
		ProductID:      "arroz-paddy",
		WarehouseID:    "w-1",
		AvailableStock: decimal.NewFromInt(50),
		UnitCost:       decimal.NewFromInt(10),
		IsActive:       true,
	}
}

func TestStore_Get(t *testing.T) {
	e := activeEntry()
	repo := &fakeLedgerRepo{entries: map[string]*entity.LedgerEntry{
		entryKey(e.ProductID, e.WarehouseID, ""): e,
	}}
	store := ledger.NewStore(repo, nil, nil)
	ctx := context.Background()

	got, err := store.Get(ctx, "arroz-paddy", "w-1", "")
	require.NoError(t, err)
	assert.Equal(t, "entry-1", got.ID)

	_, err = store.Get(ctx, "inexistente", "w-1", "")
	assert.ErrorIs(t, err, domain.ErrLedgerNotFound)

	_, err = store.Get(ctx, "", "w-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto y bodega son obligatorios")
}

func TestStore_GetAsientoInactivoNoEsVisible(t *testing.T) {
	e := activeEntry()
	e.IsActive = false
	repo := &fakeLedgerRepo{entries: map[string]*entity.LedgerEntry{
		entryKey(e.ProductID, e.WarehouseID, ""): e,
	}}
	store := ledger.NewStore(repo, nil, nil)

	_, err := store.Get(context.Background(), "arroz-paddy", "w-1", "")
	assert.ErrorIs(t, err, domain.ErrLedgerNotFound)
}

func TestStore_CreateRechazaDuplicados(t *testing.T) {
	repo := &fakeLedgerRepo{entries: make(map[string]*entity.LedgerEntry)}
	store := ledger.NewStore(repo, nil, nil)
	ctx := context.Background()

	id, err := store.Create(ctx, &entity.LedgerEntry{
		ProductID:   "arroz-paddy",
		WarehouseID: "w-1",
		UnitCost:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id, "Create debe asignar el ID")

	_, err = store.Create(ctx, &entity.LedgerEntry{ProductID: "arroz-paddy", WarehouseID: "w-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStore_ValuationPasaPorElCache(t *testing.T) {
	repo := &fakeLedgerRepo{entries: make(map[string]*entity.LedgerEntry)}
	cache := &fakeCache{values: make(map[string][]repository.WarehouseValuation)}
	store := ledger.NewStore(repo, cache, nil)
	ctx := context.Background()

	first, err := store.ValuationByWarehouse(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.valuationCalls)

	// Segunda consulta: servida desde el cache, el repo no vuelve a ejecutar la agregación.
	second, err := store.ValuationByWarehouse(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.valuationCalls, "la segunda lectura debe salir del cache")
}

func TestStore_ValuationSinCacheConsultaSiempre(t *testing.T) {
	repo := &fakeLedgerRepo{entries: make(map[string]*entity.LedgerEntry)}
	store := ledger.NewStore(repo, nil, nil)
	ctx := context.Background()

	_, err := store.ValuationByWarehouse(ctx)
	require.NoError(t, err)
	_, err = store.ValuationByWarehouse(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.valuationCalls)
}
