package repository

import (
	"context"

	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// StockAdjustmentRepository define el puerto de persistencia para ajustes de stock.
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.StockAdjustment) error
	GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error)
	// GetByIDForUpdate bloquea la fila del ajuste mientras se decide su aprobación,
	// para que dos aprobaciones concurrentes no apliquen el cambio dos veces.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.StockAdjustment, error)
	Update(ctx context.Context, adjustment *entity.StockAdjustment) error
	List(ctx context.Context, state entity.AdjustmentState, limit, offset int) ([]*entity.StockAdjustment, error)
	Deactivate(ctx context.Context, id string) error
}
