package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder es la vista mínima de un pedido de venta que necesita el motor de
// inventario: la bandera de reserva y sus renglones. El ciclo de vida completo del
// pedido (precios, facturación, despacho) vive en el módulo de ventas.
type SalesOrder struct {
	ID              string
	Code            string
	CustomerID      string
	StockReserved   bool
	StockReservedAt *time.Time
	Items           []SalesOrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SalesOrderItem es un renglón del pedido. AllocatedQuantity es la cantidad
// efectivamente reservada en el ledger para este renglón (0 si no hay reserva).
// WarehouseID vacío usa la bodega por defecto configurada.
type SalesOrderItem struct {
	ID                string
	OrderID           string
	ProductID         string
	WarehouseID       string
	ZoneID            string
	Quantity          decimal.Decimal
	AllocatedQuantity decimal.Decimal
}
