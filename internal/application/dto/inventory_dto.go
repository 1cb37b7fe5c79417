package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID   string           `json:"product_id"`
	WarehouseID string           `json:"warehouse_id"`
	ZoneID      string           `json:"zone_id,omitempty"`
	Type        string           `json:"type"` // IN | OUT
	Category    string           `json:"category"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"` // obligatorio en IN
	Reference   string           `json:"reference,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// MovementResponse representación HTTP de un movimiento de stock.
type MovementResponse struct {
	Code        string          `json:"code"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	ZoneID      string          `json:"zone_id,omitempty"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Reference   string          `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by"`
}

// CreateLedgerEntryRequest body para POST /api/ledger.
type CreateLedgerEntryRequest struct {
	ProductID    string          `json:"product_id"`
	WarehouseID  string          `json:"warehouse_id"`
	ZoneID       string          `json:"zone_id,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	MinimumLevel decimal.Decimal `json:"minimum_level"`
	MaximumLevel decimal.Decimal `json:"maximum_level"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// LedgerEntryResponse representación HTTP de un asiento del ledger.
type LedgerEntryResponse struct {
	ProductID      string          `json:"product_id"`
	WarehouseID    string          `json:"warehouse_id"`
	ZoneID         string          `json:"zone_id,omitempty"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	ReservedStock  decimal.Decimal `json:"reserved_stock"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalValue     decimal.Decimal `json:"total_value"`
	MinimumLevel   decimal.Decimal `json:"minimum_level"`
	MaximumLevel   decimal.Decimal `json:"maximum_level"`
	ReorderLevel   decimal.Decimal `json:"reorder_level"`
	Status         string          `json:"status"` // Normal | LowStock | Reorder | Overstock
	LastMovementAt *time.Time      `json:"last_movement_at,omitempty"`
}

// WarehouseValuationResponse agregado de valorización por bodega.
type WarehouseValuationResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	Entries     int64           `json:"entries"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// ValuationResponse respuesta de GET /api/ledger/valuation.
type ValuationResponse struct {
	Total      decimal.Decimal              `json:"total"`
	Warehouses []WarehouseValuationResponse `json:"warehouses"`
}
