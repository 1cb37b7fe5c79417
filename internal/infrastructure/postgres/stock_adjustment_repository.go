package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

const adjustmentColumns = `
	id, code, product_id, warehouse_id, zone_id, type, quantity,
	before_quantity, after_quantity, reason, requires_approval, state,
	approved_by, rejected_by, approved_at, rejected_at, remarks, requested_by,
	is_active, created_at, updated_at`

func scanAdjustment(row pgx.Row) (*entity.StockAdjustment, error) {
	var a entity.StockAdjustment
	err := row.Scan(
		&a.ID, &a.Code, &a.ProductID, &a.WarehouseID, &a.ZoneID, &a.Type, &a.Quantity,
		&a.BeforeQuantity, &a.AfterQuantity, &a.Reason, &a.RequiresApproval, &a.State,
		&a.ApprovedBy, &a.RejectedBy, &a.ApprovedAt, &a.RejectedAt, &a.Remarks, &a.RequestedBy,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una solicitud de ajuste. domain.ErrDuplicate si el código ya existe.
func (r *StockAdjustmentRepo) Create(ctx context.Context, a *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Code, a.ProductID, a.WarehouseID, a.ZoneID, a.Type, a.Quantity,
		a.BeforeQuantity, a.AfterQuantity, a.Reason, a.RequiresApproval, a.State,
		a.ApprovedBy, a.RejectedBy, a.ApprovedAt, a.RejectedAt, a.Remarks, a.RequestedBy,
		a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID, o nil si no existe.
func (r *StockAdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments WHERE id = $1`
	a, err := scanAdjustment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock adjustment: %w", err)
	}
	return a, nil
}

// GetByIDForUpdate obtiene el ajuste con bloqueo de fila mientras se decide su
// aprobación o rechazo.
func (r *StockAdjustmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments WHERE id = $1 FOR UPDATE`
	a, err := scanAdjustment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock adjustment for update: %w", err)
	}
	return a, nil
}

// Update persiste el estado del flujo de aprobación de un ajuste.
func (r *StockAdjustmentRepo) Update(ctx context.Context, a *entity.StockAdjustment) error {
	query := `
		UPDATE stock_adjustments SET
			state = $2, approved_by = $3, rejected_by = $4, approved_at = $5,
			rejected_at = $6, remarks = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		a.ID, a.State, a.ApprovedBy, a.RejectedBy, a.ApprovedAt,
		a.RejectedAt, a.Remarks, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock adjustment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ajustes, filtrados por estado ('' = todos), más recientes primero.
func (r *StockAdjustmentRepo) List(ctx context.Context, state entity.AdjustmentState, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments
		WHERE is_active AND ($1 = '' OR state = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(state), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Deactivate desactiva lógicamente un ajuste no aprobado.
func (r *StockAdjustmentRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_adjustments SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate stock adjustment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
