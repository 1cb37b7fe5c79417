package repository

import (
	"context"

	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas y zonas (DIP).
// El motor solo valida existencia; la administración completa vive en master data.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
	Deactivate(ctx context.Context, id string) error

	CreateZone(ctx context.Context, zone *entity.StorageZone) error
	GetZoneByID(ctx context.Context, id string) (*entity.StorageZone, error)
	ListZones(ctx context.Context, warehouseID string) ([]*entity.StorageZone, error)
}
