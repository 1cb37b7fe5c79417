package repository

import (
	"context"
	"time"

	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
// La tabla es append-only: no hay Update, solo desactivación lógica.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByCode(ctx context.Context, code string) (*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	Deactivate(ctx context.Context, code string) error
}
