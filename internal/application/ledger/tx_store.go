package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

// TxStore es la frontera de escritura del ledger dentro de una transacción.
// Movimientos, ajustes y reservas mutan ledger_entries únicamente a través de este
// tipo; el TxRunner lo construye atado a la transacción en curso. SetStock es la
// primitiva única de mutación de stock: siempre recalcula TotalValue y sella
// LastMovementAt, así el invariante TotalValue = stock * costo no puede romperse.
type TxStore struct {
	repo repository.LedgerRepository
}

// NewTxStore construye la frontera de escritura sobre un repositorio atado a la tx.
func NewTxStore(repo repository.LedgerRepository) *TxStore {
	return &TxStore{repo: repo}
}

// GetForUpdate obtiene el asiento con bloqueo de fila, o nil si no existe.
func (s *TxStore) GetForUpdate(ctx context.Context, productID, warehouseID, zoneID string) (*entity.LedgerEntry, error) {
	return s.repo.GetForUpdate(ctx, productID, warehouseID, zoneID)
}

// CreateEntry inserta un asiento nuevo del ledger. Rechaza cantidades negativas y
// duplicados sobre la clave (producto, bodega, zona).
func (s *TxStore) CreateEntry(ctx context.Context, e *entity.LedgerEntry) error {
	if e.ProductID == "" || e.WarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if e.AvailableStock.IsNegative() || e.ReservedStock.IsNegative() {
		return domain.ErrNegativeStock
	}
	now := time.Now()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.IsActive = true
	e.CreatedAt = now
	e.UpdatedAt = now
	e.LastMovementAt = &now
	e.RecalculateValue()
	return s.repo.Create(ctx, e)
}

// SetStock es la primitiva única de mutación: fija el stock disponible (y
// opcionalmente el costo unitario) de un asiento ya bloqueado con GetForUpdate.
// Recalcula TotalValue y actualiza LastMovementAt en la misma escritura.
func (s *TxStore) SetStock(ctx context.Context, e *entity.LedgerEntry, newAvailable decimal.Decimal, newUnitCost *decimal.Decimal) error {
	if newAvailable.IsNegative() {
		return domain.ErrNegativeStock
	}
	now := time.Now()
	e.AvailableStock = newAvailable
	if newUnitCost != nil {
		if newUnitCost.IsNegative() {
			return domain.ErrInvalidInput
		}
		e.UnitCost = *newUnitCost
	}
	e.RecalculateValue()
	e.LastMovementAt = &now
	e.UpdatedAt = now
	return s.repo.Update(ctx, e)
}

// Reserve mueve cantidad de disponible a reservado (reserva no destructiva:
// el stock total no cambia). Falla con ErrInsufficientStock si no alcanza.
func (s *TxStore) Reserve(ctx context.Context, e *entity.LedgerEntry, qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if e.AvailableStock.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	e.AvailableStock = e.AvailableStock.Sub(qty)
	e.ReservedStock = e.ReservedStock.Add(qty)
	e.RecalculateValue()
	e.UpdatedAt = time.Now()
	return s.repo.Update(ctx, e)
}

// Release devuelve cantidad de reservado a disponible (cancelación de pedido).
func (s *TxStore) Release(ctx context.Context, e *entity.LedgerEntry, qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if e.ReservedStock.LessThan(qty) {
		return domain.ErrConflict
	}
	e.ReservedStock = e.ReservedStock.Sub(qty)
	e.AvailableStock = e.AvailableStock.Add(qty)
	e.RecalculateValue()
	e.UpdatedAt = time.Now()
	return s.repo.Update(ctx, e)
}
