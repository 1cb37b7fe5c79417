package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
// El motor solo lee el pedido y escribe la bandera de reserva y las asignaciones;
// el resto del pedido pertenece al módulo de ventas.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// GetByID devuelve el pedido con sus renglones, o nil si no existe.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate bloquea la fila del pedido (SELECT FOR UPDATE) durante la
// reserva o liberación, para serializar operaciones sobre el mismo pedido.
func (r *SalesOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, id, true)
}

func (r *SalesOrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.SalesOrder, error) {
	query := `
		SELECT id, code, customer_id, stock_reserved, stock_reserved_at, created_at, updated_at
		FROM sales_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.SalesOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Code, &o.CustomerID, &o.StockReserved, &o.StockReservedAt,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, warehouse_id, zone_id, quantity, allocated_quantity
		FROM sales_order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.WarehouseID,
			&it.ZoneID, &it.Quantity, &it.AllocatedQuantity); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateReservation persiste la bandera de reserva del pedido y la cantidad
// asignada de cada renglón. Debe llamarse dentro de la misma transacción que
// movió el stock en el ledger.
func (r *SalesOrderRepo) UpdateReservation(ctx context.Context, order *entity.SalesOrder) error {
	_, err := r.q.Exec(ctx, `
		UPDATE sales_orders SET stock_reserved = $2, stock_reserved_at = $3, updated_at = now()
		WHERE id = $1`, order.ID, order.StockReserved, order.StockReservedAt)
	if err != nil {
		return fmt.Errorf("update sales order reservation: %w", err)
	}
	for i := range order.Items {
		it := &order.Items[i]
		_, err := r.q.Exec(ctx, `
			UPDATE sales_order_items SET allocated_quantity = $2 WHERE id = $1`,
			it.ID, it.AllocatedQuantity)
		if err != nil {
			return fmt.Errorf("update sales order item allocation: %w", err)
		}
	}
	return nil
}
