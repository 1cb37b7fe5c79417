package reservation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
	"github.com/jhoicas/molino-inventario/pkg/logger"
)

// ReservationUseCase coordina la reserva y liberación de stock para pedidos de
// venta. La reserva es no destructiva: mueve cantidad de disponible a reservado
// en el asiento del ledger, sin alterar el stock total.
type ReservationUseCase struct {
	txRunner           TxRunner
	defaultWarehouseID string // bodega usada cuando el renglón no indica una
	log                *logger.Logger
}

// NewReservationUseCase construye el coordinador de reservas.
func NewReservationUseCase(txRunner TxRunner, defaultWarehouseID string, log *logger.Logger) *ReservationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReservationUseCase{
		txRunner:           txRunner,
		defaultWarehouseID: defaultWarehouseID,
		log:                log,
	}
}

// ReserveStock reserva stock para todos los renglones de un pedido en una sola
// transacción. Si un renglón no tiene disponible suficiente, la transacción
// completa se revierte: nunca queda una reserva parcial. Un pedido ya reservado
// falla con ErrAlreadyReserved.
func (uc *ReservationUseCase) ReserveStock(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}

	err := uc.txRunner.RunReservation(ctx, func(
		orderRepo repository.SalesOrderRepository,
		store *ledger.TxStore,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.StockReserved {
			return domain.ErrAlreadyReserved
		}

		for i := range order.Items {
			item := &order.Items[i]
			warehouseID := item.WarehouseID
			if warehouseID == "" {
				warehouseID = uc.defaultWarehouseID
			}
			if warehouseID == "" {
				return domain.ErrInvalidInput
			}
			entry, err := store.GetForUpdate(ctx, item.ProductID, warehouseID, item.ZoneID)
			if err != nil {
				return err
			}
			if entry == nil {
				return domain.ErrLedgerNotFound
			}
			if err := store.Reserve(ctx, entry, item.Quantity); err != nil {
				return err
			}
			item.AllocatedQuantity = item.Quantity
		}

		now := time.Now()
		order.StockReserved = true
		order.StockReservedAt = &now
		return orderRepo.UpdateReservation(ctx, order)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("order_id", orderID).Msg("stock reservado para pedido")
	return nil
}

// ReleaseStock devuelve al disponible todo lo reservado por un pedido (cancelación)
// y limpia la bandera de reserva. También es todo-o-nada. Liberar un pedido sin
// reservas es un no-op exitoso.
func (uc *ReservationUseCase) ReleaseStock(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}

	err := uc.txRunner.RunReservation(ctx, func(
		orderRepo repository.SalesOrderRepository,
		store *ledger.TxStore,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.StockReserved && !hasAllocations(order) {
			return nil
		}

		for i := range order.Items {
			item := &order.Items[i]
			if !item.AllocatedQuantity.GreaterThan(decimal.Zero) {
				continue
			}
			warehouseID := item.WarehouseID
			if warehouseID == "" {
				warehouseID = uc.defaultWarehouseID
			}
			entry, err := store.GetForUpdate(ctx, item.ProductID, warehouseID, item.ZoneID)
			if err != nil {
				return err
			}
			if entry == nil {
				return domain.ErrLedgerNotFound
			}
			if err := store.Release(ctx, entry, item.AllocatedQuantity); err != nil {
				return err
			}
			item.AllocatedQuantity = decimal.Zero
		}

		order.StockReserved = false
		order.StockReservedAt = nil
		return orderRepo.UpdateReservation(ctx, order)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("order_id", orderID).Msg("stock del pedido liberado")
	return nil
}

func hasAllocations(order *entity.SalesOrder) bool {
	for i := range order.Items {
		if order.Items[i].AllocatedQuantity.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}
