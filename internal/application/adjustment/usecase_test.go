package adjustment_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/molino-inventario/internal/application/adjustment"
	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional (mutex + snapshot/rollback).
// ──────────────────────────────────────────────────────────────────────────────

const (
	bodegaID    = "11111111-1111-1111-1111-111111111111"
	productoID  = "harina-de-arroz"
	solicitante = "operario-1"
	aprobador   = "jefe-bodega"
)

func entryKey(productID, warehouseID, zoneID string) string {
	return productID + "|" + warehouseID + "|" + zoneID
}

func copyEntry(e *entity.LedgerEntry) *entity.LedgerEntry {
	c := *e
	if e.LastMovementAt != nil {
		ts := *e.LastMovementAt
		c.LastMovementAt = &ts
	}
	return &c
}

type fakeLedgerRepo struct {
	entries map[string]*entity.LedgerEntry
}

func (r *fakeLedgerRepo) snapshot() map[string]*entity.LedgerEntry {
	snap := make(map[string]*entity.LedgerEntry, len(r.entries))
	for k, v := range r.entries {
		snap[k] = copyEntry(v)
	}
	return snap
}

func (r *fakeLedgerRepo) Get(_ context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error) {
	e, ok := r.entries[entryKey(productID, warehouseID, zoneID)]
	if !ok {
		return nil, nil
	}
	return copyEntry(e), nil
}

func (r *fakeLedgerRepo) GetForUpdate(ctx context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error) {
	return r.Get(ctx, productID, warehouseID, zoneID)
}

func (r *fakeLedgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	key := entryKey(e.ProductID, e.WarehouseID, e.ZoneID)
	if _, ok := r.entries[key]; ok {
		return domain.ErrDuplicate
	}
	r.entries[key] = copyEntry(e)
	return nil
}

func (r *fakeLedgerRepo) Update(_ context.Context, e *entity.LedgerEntry) error {
	r.entries[entryKey(e.ProductID, e.WarehouseID, e.ZoneID)] = copyEntry(e)
	return nil
}

func (r *fakeLedgerRepo) Deactivate(context.Context, string, string, string) error { return nil }
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
	return nil, nil
}
func (r *fakeLedgerRepo) TotalValuation(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeAdjustmentRepo struct {
	adjustments map[string]*entity.StockAdjustment
}

func copyAdjustment(a *entity.StockAdjustment) *entity.StockAdjustment {
	c := *a
	return &c
}

func (r *fakeAdjustmentRepo) snapshot() map[string]*entity.StockAdjustment {
	snap := make(map[string]*entity.StockAdjustment, len(r.adjustments))
	for k, v := range r.adjustments {
		snap[k] = copyAdjustment(v)
	}
	return snap
}

func (r *fakeAdjustmentRepo) Create(_ context.Context, a *entity.StockAdjustment) error {
	if _, ok := r.adjustments[a.ID]; ok {
		return domain.ErrDuplicate
	}
	r.adjustments[a.ID] = copyAdjustment(a)
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(_ context.Context, id string) (*entity.StockAdjustment, error) {
	a, ok := r.adjustments[id]
	if !ok {
		return nil, nil
	}
	return copyAdjustment(a), nil
}

func (r *fakeAdjustmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAdjustmentRepo) Update(_ context.Context, a *entity.StockAdjustment) error {
	if _, ok := r.adjustments[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.adjustments[a.ID] = copyAdjustment(a)
	return nil
}

func (r *fakeAdjustmentRepo) List(_ context.Context, state entity.AdjustmentState, _, _ int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	for _, a := range r.adjustments {
		if state == "" || a.State == state {
			out = append(out, copyAdjustment(a))
		}
	}
	return out, nil
}

func (r *fakeAdjustmentRepo) Deactivate(_ context.Context, id string) error {
	a, ok := r.adjustments[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.IsActive = false
	return nil
}

type fakeSequenceRepo struct {
	value int64
}

func (r *fakeSequenceRepo) Next(context.Context, string) (int64, error) {
	r.value++
	return r.value, nil
}

type fakeTxRunner struct {
	mu     sync.Mutex
	ledger *fakeLedgerRepo
	adjs   *fakeAdjustmentRepo
	seq    *fakeSequenceRepo
}

func (r *fakeTxRunner) RunAdjustment(ctx context.Context, fn func(repository.StockAdjustmentRepository, *ledger.TxStore, repository.SequenceRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ledgerSnap := r.ledger.snapshot()
	adjSnap := r.adjs.snapshot()
	seqSnap := r.seq.value
	if err := fn(r.adjs, ledger.NewTxStore(r.ledger), r.seq); err != nil {
		r.ledger.entries = ledgerSnap
		r.adjs.adjustments = adjSnap
		r.seq.value = seqSnap
		return err
	}
	return nil
}

type testEnv struct {
	uc     *adjustment.AdjustmentUseCase
	ledger *fakeLedgerRepo
	adjs   *fakeAdjustmentRepo
}

// newTestEnv arranca el entorno con un asiento de 80 unidades @ 5.00.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ledgerRepo := &fakeLedgerRepo{entries: map[string]*entity.LedgerEntry{
		entryKey(productoID, bodegaID, ""): {
			ID:             "entry-1",
			ProductID:      productoID,
			WarehouseID:    bodegaID,
			AvailableStock: decimal.NewFromInt(80),
			UnitCost:       decimal.NewFromInt(5),
			TotalValue:     decimal.NewFromInt(400),
			IsActive:       true,
		},
	}}
	adjRepo := &fakeAdjustmentRepo{adjustments: make(map[string]*entity.StockAdjustment)}
	runner := &fakeTxRunner{ledger: ledgerRepo, adjs: adjRepo, seq: &fakeSequenceRepo{}}
	uc := adjustment.NewAdjustmentUseCase(runner, adjRepo, nil)
	return &testEnv{uc: uc, ledger: ledgerRepo, adjs: adjRepo}
}

func (env *testEnv) entry(t *testing.T) *entity.LedgerEntry {
	t.Helper()
	e, err := env.ledger.Get(context.Background(), productoID, bodegaID, "")
	require.NoError(t, err)
	require.NotNil(t, e)
	return e
}

func solicitud(tipo, qty string, requiereAprobacion bool) adjustment.AdjustmentInput {
	return adjustment.AdjustmentInput{
		ProductID:        productoID,
		WarehouseID:      bodegaID,
		Type:             tipo,
		Quantity:         decimal.RequireFromString(qty),
		Reason:           "conteo físico",
		RequiresApproval: requiereAprobacion,
		UserID:           solicitante,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: aplicación directa vs. pendiente de aprobación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SinAprobacionAplicaDeInmediato(t *testing.T) {
	env := newTestEnv(t)

	adj, err := env.uc.Create(context.Background(), solicitud(entity.AdjustmentTypeIncrease, "20", false))
	require.NoError(t, err)

	assert.Equal(t, "ADJ0001", adj.Code)
	assert.Equal(t, entity.AdjustmentStateApproved, adj.State)
	assert.Equal(t, solicitante, adj.ApprovedBy)
	assert.True(t, decimal.NewFromInt(80).Equal(adj.BeforeQuantity))
	assert.True(t, decimal.NewFromInt(100).Equal(adj.AfterQuantity))

	e := env.entry(t)
	assert.True(t, decimal.NewFromInt(100).Equal(e.AvailableStock), "el ledger debe reflejar el ajuste")
}

func TestCreate_ConAprobacionNoTocaElLedger(t *testing.T) {
	env := newTestEnv(t)

	adj, err := env.uc.Create(context.Background(), solicitud(entity.AdjustmentTypeDecrease, "30", true))
	require.NoError(t, err)

	assert.Equal(t, entity.AdjustmentStatePendingApproval, adj.State)
	assert.True(t, decimal.NewFromInt(50).Equal(adj.AfterQuantity))

	e := env.entry(t)
	assert.True(t, decimal.NewFromInt(80).Equal(e.AvailableStock),
		"un ajuste pendiente no tiene efecto sobre el stock")
}

func TestCreate_TransferFijaElStockAbsoluto(t *testing.T) {
	env := newTestEnv(t)

	adj, err := env.uc.Create(context.Background(), solicitud(entity.AdjustmentTypeTransfer, "12", false))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(12).Equal(adj.AfterQuantity))

	e := env.entry(t)
	assert.True(t, decimal.NewFromInt(12).Equal(e.AvailableStock))
}

func TestCreate_DecreaseQueDejaNegativoFalla(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), solicitud(entity.AdjustmentTypeDecrease, "81", false))
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Empty(t, env.adjs.adjustments, "el rollback no debe dejar la solicitud persistida")
}

func TestCreate_SinAsientoFalla(t *testing.T) {
	env := newTestEnv(t)
	in := solicitud(entity.AdjustmentTypeIncrease, "10", false)
	in.ProductID = "producto-sin-asiento"

	_, err := env.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrLedgerNotFound)
}

func TestCreate_Validacion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	casos := []struct {
		nombre string
		mut    func(*adjustment.AdjustmentInput)
	}{
		{"sin motivo", func(in *adjustment.AdjustmentInput) { in.Reason = "" }},
		{"tipo desconocido", func(in *adjustment.AdjustmentInput) { in.Type = "Recount" }},
		{"increase con cantidad cero", func(in *adjustment.AdjustmentInput) { in.Quantity = decimal.Zero }},
		{"transfer negativo", func(in *adjustment.AdjustmentInput) {
			in.Type = entity.AdjustmentTypeTransfer
			in.Quantity = decimal.NewFromInt(-1)
		}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			in := solicitud(entity.AdjustmentTypeIncrease, "10", false)
			tc.mut(&in)
			_, err := env.uc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Transfer a cero es válido: vaciar la posición tras un conteo.
func TestCreate_TransferACeroEsValido(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), solicitud(entity.AdjustmentTypeTransfer, "0", false))
	require.NoError(t, err)
	assert.True(t, env.entry(t).AvailableStock.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve / Reject
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_AplicaExactamenteUnaVez(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	adj, err := env.uc.Create(ctx, solicitud(entity.AdjustmentTypeIncrease, "20", true))
	require.NoError(t, err)

	aprobado, err := env.uc.Approve(ctx, adj.ID, aprobador, "ok")
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStateApproved, aprobado.State)
	assert.Equal(t, aprobador, aprobado.ApprovedBy)
	assert.NotNil(t, aprobado.ApprovedAt)
	assert.True(t, decimal.NewFromInt(100).Equal(env.entry(t).AvailableStock))

	// Segunda aprobación: el estado es terminal, el ledger no se toca de nuevo.
	_, err = env.uc.Approve(ctx, adj.ID, aprobador, "otra vez")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, decimal.NewFromInt(100).Equal(env.entry(t).AvailableStock),
		"doble aprobación no debe aplicar el ajuste dos veces")
}

// Si el stock cambió entre la solicitud y la aprobación, la foto BeforeQuantity
// quedó obsoleta: aprobar con esa base aplicaría una corrección equivocada.
func TestApprove_FotoObsoletaFallaConConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	adj, err := env.uc.Create(ctx, solicitud(entity.AdjustmentTypeIncrease, "20", true))
	require.NoError(t, err)

	// Un movimiento posterior altera el stock real.
	e := env.ledger.entries[entryKey(productoID, bodegaID, "")]
	e.AvailableStock = decimal.NewFromInt(70)

	_, err = env.uc.Approve(ctx, adj.ID, aprobador, "")
	assert.ErrorIs(t, err, domain.ErrConflict)

	guardado, err := env.uc.GetByID(ctx, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatePendingApproval, guardado.State,
		"el ajuste queda pendiente; debe resolicitarse sobre el stock vigente")
	assert.True(t, decimal.NewFromInt(70).Equal(env.entry(t).AvailableStock))
}

func TestApprove_RespetaElReservado(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 80 en bodega: 50 disponibles + 30 reservados por pedidos.
	e := env.ledger.entries[entryKey(productoID, bodegaID, "")]
	e.AvailableStock = decimal.NewFromInt(50)
	e.ReservedStock = decimal.NewFromInt(30)

	adj, err := env.uc.Create(ctx, solicitud(entity.AdjustmentTypeTransfer, "100", true))
	require.NoError(t, err)
	_, err = env.uc.Approve(ctx, adj.ID, aprobador, "")
	require.NoError(t, err)

	final := env.entry(t)
	assert.True(t, decimal.NewFromInt(70).Equal(final.AvailableStock),
		"el ajuste fija el total; lo reservado se conserva")
	assert.True(t, decimal.NewFromInt(30).Equal(final.ReservedStock))
	assert.True(t, decimal.NewFromInt(100).Equal(final.CurrentStock()))
}

func TestReject_NoTocaElLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	adj, err := env.uc.Create(ctx, solicitud(entity.AdjustmentTypeDecrease, "10", true))
	require.NoError(t, err)

	rechazado, err := env.uc.Reject(ctx, adj.ID, aprobador, "conteo mal hecho")
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStateRejected, rechazado.State)
	assert.Equal(t, aprobador, rechazado.RejectedBy)
	assert.NotNil(t, rechazado.RejectedAt)
	assert.True(t, decimal.NewFromInt(80).Equal(env.entry(t).AvailableStock))

	// Un ajuste rechazado tampoco puede aprobarse después.
	_, err = env.uc.Approve(ctx, adj.ID, aprobador, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReject_RequiereMotivo(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.uc.Reject(context.Background(), "cualquier-id", aprobador, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_PendienteSePuedeEliminar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	adj, err := env.uc.Create(ctx, solicitud(entity.AdjustmentTypeIncrease, "5", true))
	require.NoError(t, err)

	require.NoError(t, env.uc.Delete(ctx, adj.ID))
	_, err = env.uc.GetByID(ctx, adj.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_AprobadoNoSeElimina(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	adj, err := env.uc.Create(ctx, solicitud(entity.AdjustmentTypeIncrease, "5", false))
	require.NoError(t, err)

	err = env.uc.Delete(ctx, adj.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"un ajuste aplicado es parte del historial contable")
}
