package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/molino-inventario/internal/application/adjustment"
	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/application/movement"
	"github.com/jhoicas/molino-inventario/internal/application/reservation"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

// TxRunner satisface los puertos transaccionales de cada caso de uso del motor.
var _ movement.TxRunner = (*TxRunner)(nil)
var _ adjustment.TxRunner = (*TxRunner)(nil)
var _ reservation.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Construye los
// repositorios y la frontera de escritura del ledger atados a la tx, así el
// evento (movimiento/ajuste/reserva) y su efecto sobre ledger_entries se
// confirman o revierten como una sola unidad.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción para registrar movimientos de stock.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	store *ledger.TxStore,
	seq repository.SequenceRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewStockMovementRepository(tx),
			ledger.NewTxStore(NewLedgerRepository(tx)),
			NewSequenceRepository(tx),
		)
	})
}

// RunAdjustment transacción para el flujo de ajustes.
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	adjRepo repository.StockAdjustmentRepository,
	store *ledger.TxStore,
	seq repository.SequenceRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewStockAdjustmentRepository(tx),
			ledger.NewTxStore(NewLedgerRepository(tx)),
			NewSequenceRepository(tx),
		)
	})
}

// RunReservation transacción para reservar/liberar stock de un pedido.
func (r *TxRunner) RunReservation(ctx context.Context, fn func(
	orderRepo repository.SalesOrderRepository,
	store *ledger.TxStore,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewSalesOrderRepository(tx),
			ledger.NewTxStore(NewLedgerRepository(tx)),
		)
	})
}
