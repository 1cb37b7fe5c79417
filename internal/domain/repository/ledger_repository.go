package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// WarehouseValuation es el agregado de valorización de una bodega.
type WarehouseValuation struct {
	WarehouseID string
	Entries     int64
	TotalValue  decimal.Decimal
}

// LedgerRepository define el puerto de persistencia para los asientos del ledger.
// Es la única vía de escritura sobre ledger_entries: movimientos, ajustes y reservas
// escriben a través del Ledger Store, nunca directo contra la tabla.
type LedgerRepository interface {
	// Get devuelve el asiento o nil si no existe.
	Get(ctx context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para un read-modify-write seguro.
	GetForUpdate(ctx context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error)
	// Create inserta un asiento nuevo; domain.ErrDuplicate si la clave única ya existe.
	Create(ctx context.Context, e *entity.LedgerEntry) error
	Update(ctx context.Context, e *entity.LedgerEntry) error
	// Deactivate marca el asiento como inactivo (borrado lógico).
	Deactivate(ctx context.Context, productID, warehouseID, zoneID string) error

	// Consultas de solo lectura para reportes.
	ListActive(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.LedgerEntry, error)
	ListLowStock(ctx context.Context, warehouseID string) ([]*entity.LedgerEntry, error)
	ListOverstock(ctx context.Context, warehouseID string) ([]*entity.LedgerEntry, error)
	ListReorder(ctx context.Context, warehouseID string) ([]*entity.LedgerEntry, error)
	ValuationByWarehouse(ctx context.Context) ([]WarehouseValuation, error)
	TotalValuation(ctx context.Context) (decimal.Decimal, error)
}
