package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste de inventario.
const (
	AdjustmentTypeIncrease = "Increase" // suma Quantity al stock actual
	AdjustmentTypeDecrease = "Decrease" // resta Quantity del stock actual
	AdjustmentTypeTransfer = "Transfer" // fija el stock en Quantity (valor absoluto)
)

// AdjustmentState es el estado del flujo de aprobación de un ajuste.
// Un solo enum en lugar del par de booleanos isApproved/isRejected: así no existen
// combinaciones inválidas y las transiciones se validan de forma exhaustiva.
type AdjustmentState string

const (
	AdjustmentStateDraft           AdjustmentState = "Draft"
	AdjustmentStatePendingApproval AdjustmentState = "PendingApproval"
	AdjustmentStateApproved        AdjustmentState = "Approved"
	AdjustmentStateRejected        AdjustmentState = "Rejected"
)

// CanTransition indica si la transición de estado es legal.
// Draft -> PendingApproval | Approved; PendingApproval -> Approved | Rejected.
// Approved y Rejected son terminales.
func (s AdjustmentState) CanTransition(to AdjustmentState) bool {
	switch s {
	case AdjustmentStateDraft:
		return to == AdjustmentStatePendingApproval || to == AdjustmentStateApproved
	case AdjustmentStatePendingApproval:
		return to == AdjustmentStateApproved || to == AdjustmentStateRejected
	default:
		return false
	}
}

// IsTerminal indica si el estado no admite más transiciones.
func (s AdjustmentState) IsTerminal() bool {
	return s == AdjustmentStateApproved || s == AdjustmentStateRejected
}

// StockAdjustment es una solicitud de corrección de stock, con aprobación opcional.
// BeforeQuantity es la foto del ledger al momento de la solicitud; AfterQuantity el
// resultado calculado según el tipo. El ledger solo se toca cuando el ajuste queda Approved.
type StockAdjustment struct {
	ID               string
	Code             string // ADJ%04d, único y secuencial
	ProductID        string
	WarehouseID      string
	ZoneID           string
	Type             string // Increase | Decrease | Transfer
	Quantity         decimal.Decimal
	BeforeQuantity   decimal.Decimal
	AfterQuantity    decimal.Decimal
	Reason           string
	RequiresApproval bool
	State            AdjustmentState
	ApprovedBy       string
	RejectedBy       string
	ApprovedAt       *time.Time
	RejectedAt       *time.Time
	Remarks          string
	RequestedBy      string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
