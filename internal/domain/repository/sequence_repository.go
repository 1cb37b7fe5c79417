package repository

import "context"

// Nombres de secuencia para los códigos correlativos.
const (
	SequenceStockMovements   = "stock_movements"
	SequenceStockAdjustments = "stock_adjustments"
	SequenceWarehouses       = "warehouses"
)

// SequenceRepository entrega correlativos atómicos para los códigos STM/ADJ/WRHS.
// Reemplaza el patrón "escanear el máximo e incrementar": el contador se incrementa
// con un UPDATE atómico dentro de la misma transacción del insert, así dos creaciones
// concurrentes nunca obtienen el mismo código.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
