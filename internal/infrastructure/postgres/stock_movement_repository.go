package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es append-only: solo INSERT y desactivación lógica.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `
	id, code, product_id, warehouse_id, zone_id, type, category, quantity,
	unit_cost, total_cost, reference, notes, is_active, created_at, created_by`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.Code, &m.ProductID, &m.WarehouseID, &m.ZoneID, &m.Type, &m.Category,
		&m.Quantity, &m.UnitCost, &m.TotalCost, &m.Reference, &m.Notes,
		&m.IsActive, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un movimiento de stock. domain.ErrDuplicate si el código ya existe.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Code, m.ProductID, m.WarehouseID, m.ZoneID, m.Type, m.Category,
		m.Quantity, m.UnitCost, m.TotalCost, m.Reference, m.Notes,
		m.IsActive, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByCode obtiene un movimiento por su código correlativo, o nil si no existe.
func (r *StockMovementRepo) GetByCode(ctx context.Context, code string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE code = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByProduct historial de movimientos de un producto, con rango de fechas opcional.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE is_active AND product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	return r.queryMovements(ctx, query, productID, from, to, limit, offset)
}

// ListByWarehouse historial de movimientos de una bodega, con rango de fechas opcional.
func (r *StockMovementRepo) ListByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE is_active AND warehouse_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	return r.queryMovements(ctx, query, warehouseID, from, to, limit, offset)
}

// Deactivate desactiva lógicamente un movimiento; el historial nunca se borra.
func (r *StockMovementRepo) Deactivate(ctx context.Context, code string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_movements SET is_active = false WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("deactivate stock movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockMovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
