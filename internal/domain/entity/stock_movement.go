package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Categorías de movimiento más comunes. El campo es texto libre; estas constantes
// existen para los módulos que emiten movimientos (producción, ventas, compras).
const (
	MovementCategoryProduction = "Production"
	MovementCategorySale       = "Sale"
	MovementCategoryPurchase   = "Purchase"
)

// StockMovement es el evento inmutable del historial de inventario: una entrada (IN)
// o salida (OUT) de stock. Es append-only; nunca se modifica después de creado,
// salvo desactivación lógica. El estado del ledger se deriva de estos eventos.
type StockMovement struct {
	ID          string
	Code        string // STM%04d, único y secuencial
	ProductID   string
	WarehouseID string
	ZoneID      string
	Type        string          // IN | OUT
	Category    string          // Production, Sale, Purchase, ...
	Quantity    decimal.Decimal // siempre > 0; el signo lo da Type
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal // = Quantity * UnitCost
	Reference   string          // factura, lote de producción, orden de compra, etc.
	Notes       string
	IsActive    bool
	CreatedAt   time.Time
	CreatedBy   string // UserID
}
