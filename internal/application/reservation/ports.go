package reservation

import (
	"context"

	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repositorio
// de pedidos y la frontera de escritura del ledger atados a esa transacción.
// La reserva de un pedido es todo-o-nada: si cualquier renglón falla, se revierte
// el pedido completo y ningún asiento queda decrementado.
type TxRunner interface {
	RunReservation(ctx context.Context, fn func(
		orderRepo repository.SalesOrderRepository,
		store *ledger.TxStore,
	) error) error
}
