package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL (usable con pool o tx).
// Tabla ledger_entries con índice único sobre (product_id, warehouse_id, zone_id);
// zone_id es '' cuando el asiento no tiene zona.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `
	id, product_id, warehouse_id, zone_id, available_stock, reserved_stock,
	unit_cost, total_value, minimum_level, maximum_level, reorder_level,
	last_movement_at, is_active, created_at, updated_at`

func scanLedgerEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	err := row.Scan(
		&e.ID, &e.ProductID, &e.WarehouseID, &e.ZoneID, &e.AvailableStock, &e.ReservedStock,
		&e.UnitCost, &e.TotalValue, &e.MinimumLevel, &e.MaximumLevel, &e.ReorderLevel,
		&e.LastMovementAt, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Get devuelve el asiento o nil si no existe.
func (r *LedgerRepo) Get(ctx context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE product_id = $1 AND warehouse_id = $2 AND zone_id = $3`
	e, err := scanLedgerEntry(r.q.QueryRow(ctx, query, productID, warehouseID, zoneID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// GetForUpdate obtiene el asiento y bloquea la fila (SELECT FOR UPDATE).
// El bloqueo serializa los read-modify-write concurrentes sobre la misma clave.
func (r *LedgerRepo) GetForUpdate(ctx context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE product_id = $1 AND warehouse_id = $2 AND zone_id = $3
		FOR UPDATE`
	e, err := scanLedgerEntry(r.q.QueryRow(ctx, query, productID, warehouseID, zoneID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry for update: %w", err)
	}
	return e, nil
}

// Create inserta un asiento nuevo; domain.ErrDuplicate sobre la clave única.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductID, e.WarehouseID, e.ZoneID, e.AvailableStock, e.ReservedStock,
		e.UnitCost, e.TotalValue, e.MinimumLevel, e.MaximumLevel, e.ReorderLevel,
		e.LastMovementAt, e.IsActive, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// Update persiste el estado completo de un asiento previamente bloqueado.
func (r *LedgerRepo) Update(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		UPDATE ledger_entries SET
			available_stock = $2, reserved_stock = $3, unit_cost = $4, total_value = $5,
			minimum_level = $6, maximum_level = $7, reorder_level = $8,
			last_movement_at = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, e.AvailableStock, e.ReservedStock, e.UnitCost, e.TotalValue,
		e.MinimumLevel, e.MaximumLevel, e.ReorderLevel,
		e.LastMovementAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLedgerNotFound
	}
	return nil
}

// Deactivate marca el asiento como inactivo (borrado lógico).
func (r *LedgerRepo) Deactivate(ctx context.Context, productID, warehouseID, zoneID string) error {
	query := `
		UPDATE ledger_entries SET is_active = false, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND zone_id = $3`
	cmd, err := r.q.Exec(ctx, query, productID, warehouseID, zoneID)
	if err != nil {
		return fmt.Errorf("deactivate ledger entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLedgerNotFound
	}
	return nil
}

// ListActive lista asientos activos, opcionalmente por bodega ('' = todas).
func (r *LedgerRepo) ListActive(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE is_active AND ($1 = '' OR warehouse_id = $1)
		ORDER BY warehouse_id, product_id, zone_id
		LIMIT $2 OFFSET $3`
	return r.queryEntries(ctx, query, warehouseID, limit, offset)
}

// ListLowStock asientos con stock total por debajo del mínimo.
func (r *LedgerRepo) ListLowStock(ctx context.Context, warehouseID string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE is_active AND ($1 = '' OR warehouse_id = $1)
		  AND (available_stock + reserved_stock) < minimum_level
		ORDER BY (minimum_level - available_stock - reserved_stock) DESC`
	return r.queryEntries(ctx, query, warehouseID)
}

// ListOverstock asientos en o sobre el máximo (máximo 0 = sin límite).
func (r *LedgerRepo) ListOverstock(ctx context.Context, warehouseID string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE is_active AND ($1 = '' OR warehouse_id = $1)
		  AND maximum_level > 0
		  AND (available_stock + reserved_stock) >= maximum_level
		ORDER BY (available_stock + reserved_stock - maximum_level) DESC`
	return r.queryEntries(ctx, query, warehouseID)
}

// ListReorder asientos entre el mínimo y el punto de reorden: todavía no son
// stock bajo, pero ya conviene pedir.
func (r *LedgerRepo) ListReorder(ctx context.Context, warehouseID string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE is_active AND ($1 = '' OR warehouse_id = $1)
		  AND reorder_level > 0
		  AND (available_stock + reserved_stock) >= minimum_level
		  AND (available_stock + reserved_stock) <= reorder_level
		ORDER BY (reorder_level - available_stock - reserved_stock) DESC`
	return r.queryEntries(ctx, query, warehouseID)
}

// ValuationByWarehouse valorización agregada por bodega (solo asientos activos).
func (r *LedgerRepo) ValuationByWarehouse(ctx context.Context) ([]repository.WarehouseValuation, error) {
	query := `
		SELECT warehouse_id, COUNT(*), COALESCE(SUM(total_value), 0)
		FROM ledger_entries
		WHERE is_active
		GROUP BY warehouse_id
		ORDER BY warehouse_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("valuation by warehouse: %w", err)
	}
	defer rows.Close()
	var list []repository.WarehouseValuation
	for rows.Next() {
		var v repository.WarehouseValuation
		if err := rows.Scan(&v.WarehouseID, &v.Entries, &v.TotalValue); err != nil {
			return nil, fmt.Errorf("scan valuation: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// TotalValuation valorización global del inventario activo.
func (r *LedgerRepo) TotalValuation(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_value), 0) FROM ledger_entries WHERE is_active`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total valuation: %w", err)
	}
	return total, nil
}

func (r *LedgerRepo) queryEntries(ctx context.Context, query string, args ...any) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
