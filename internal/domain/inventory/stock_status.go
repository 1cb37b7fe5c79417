package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// StockStatus clasifica el nivel de existencias de un asiento del ledger.
type StockStatus string

const (
	StatusNormal    StockStatus = "Normal"
	StatusLowStock  StockStatus = "LowStock"  // por debajo del mínimo
	StatusReorder   StockStatus = "Reorder"   // entre el mínimo y el punto de reorden
	StatusOverstock StockStatus = "Overstock" // en o sobre el máximo
)

// ClassifyStock determina el estado del asiento según sus umbrales.
// Reglas, evaluadas sobre el stock total (disponible + reservado):
//   - stock < mínimo                  -> LowStock
//   - mínimo <= stock <= reorden      -> Reorder
//   - stock >= máximo (y máximo > 0)  -> Overstock
//   - en otro caso                    -> Normal
func ClassifyStock(e *entity.LedgerEntry) StockStatus {
	stock := e.CurrentStock()
	if stock.LessThan(e.MinimumLevel) {
		return StatusLowStock
	}
	if e.ReorderLevel.GreaterThan(decimal.Zero) && stock.LessThanOrEqual(e.ReorderLevel) {
		return StatusReorder
	}
	if e.MaximumLevel.GreaterThan(decimal.Zero) && stock.GreaterThanOrEqual(e.MaximumLevel) {
		return StatusOverstock
	}
	return StatusNormal
}
