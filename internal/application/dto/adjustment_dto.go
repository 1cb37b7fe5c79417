package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	ProductID        string          `json:"product_id"`
	WarehouseID      string          `json:"warehouse_id"`
	ZoneID           string          `json:"zone_id,omitempty"`
	Type             string          `json:"type"` // Increase | Decrease | Transfer
	Quantity         decimal.Decimal `json:"quantity"`
	Reason           string          `json:"reason"`
	RequiresApproval bool            `json:"requires_approval"`
}

// ApproveAdjustmentRequest body para POST /api/adjustments/:id/approve.
type ApproveAdjustmentRequest struct {
	Remarks string `json:"remarks,omitempty"`
}

// RejectAdjustmentRequest body para POST /api/adjustments/:id/reject.
type RejectAdjustmentRequest struct {
	Reason string `json:"reason"`
}

// AdjustmentResponse representación HTTP de un ajuste de stock.
type AdjustmentResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	ProductID      string          `json:"product_id"`
	WarehouseID    string          `json:"warehouse_id"`
	ZoneID         string          `json:"zone_id,omitempty"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	BeforeQuantity decimal.Decimal `json:"before_quantity"`
	AfterQuantity  decimal.Decimal `json:"after_quantity"`
	Reason         string          `json:"reason"`
	State          string          `json:"state"`
	ApprovedBy     string          `json:"approved_by,omitempty"`
	RejectedBy     string          `json:"rejected_by,omitempty"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	RejectedAt     *time.Time      `json:"rejected_at,omitempty"`
	Remarks        string          `json:"remarks,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
