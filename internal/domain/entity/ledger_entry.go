package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry es el registro canónico de existencias y valorización de un producto
// en una bodega (y opcionalmente una zona de almacenamiento). Clave única:
// (ProductID, WarehouseID, ZoneID); ZoneID vacío significa sin zona.
//
// El stock se divide en disponible y reservado: CurrentStock() = disponible + reservado.
// Las reservas de pedidos mueven cantidad entre ambos sin destruir el total.
type LedgerEntry struct {
	ID             string
	ProductID      string
	WarehouseID    string
	ZoneID         string // "" = sin zona
	AvailableStock decimal.Decimal
	ReservedStock  decimal.Decimal
	UnitCost       decimal.Decimal
	TotalValue     decimal.Decimal // siempre = CurrentStock() * UnitCost, recalculado en cada escritura
	MinimumLevel   decimal.Decimal
	MaximumLevel   decimal.Decimal
	ReorderLevel   decimal.Decimal
	LastMovementAt *time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CurrentStock devuelve el total en bodega: disponible + reservado.
func (e *LedgerEntry) CurrentStock() decimal.Decimal {
	return e.AvailableStock.Add(e.ReservedStock)
}

// RecalculateValue recalcula TotalValue a partir del stock total y el costo unitario.
func (e *LedgerEntry) RecalculateValue() {
	e.TotalValue = e.CurrentStock().Mul(e.UnitCost)
}
