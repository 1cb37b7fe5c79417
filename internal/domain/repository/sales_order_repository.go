package repository

import (
	"context"

	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para la parte del pedido
// que le interesa al motor de inventario: bandera de reserva y renglones asignados.
type SalesOrderRepository interface {
	// GetByID devuelve el pedido con sus renglones, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// GetByIDForUpdate bloquea el pedido durante reserva/liberación para que dos
	// llamadas concurrentes sobre el mismo pedido no dupliquen la operación.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	// UpdateReservation persiste la bandera de reserva del pedido y el
	// AllocatedQuantity de cada renglón.
	UpdateReservation(ctx context.Context, order *entity.SalesOrder) error
}
