package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/molino-inventario/internal/application/adjustment"
	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/application/movement"
	"github.com/jhoicas/molino-inventario/internal/application/reservation"
	"github.com/jhoicas/molino-inventario/internal/application/warehouse"
)

// Roles reconocidos por la API. Los aprobadores de ajustes y los
// administradores de bodegas requieren rol explícito.
const (
	RoleAdmin    = "admin"
	RoleApprover = "approver"
	RoleOperator = "operator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerStore   *ledger.Store
	MovementUC    *movement.RecordMovementUseCase
	AdjustmentUC  *adjustment.AdjustmentUseCase
	ReservationUC *reservation.ReservationUseCase
	WarehouseUC   *warehouse.WarehouseUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ledger (protegido): lecturas para todo rol autenticado, alta y baja
	// de asientos solo para admin.
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerStore)
	ledgerGroup.Get("/", ledgerHandler.List)
	ledgerGroup.Get("/entry", ledgerHandler.Get)
	ledgerGroup.Get("/low-stock", ledgerHandler.LowStock)
	ledgerGroup.Get("/overstock", ledgerHandler.Overstock)
	ledgerGroup.Get("/reorder", ledgerHandler.Reorder)
	ledgerGroup.Get("/valuation", ledgerHandler.Valuation)
	ledgerGroup.Post("/", RequireRole(RoleAdmin), ledgerHandler.Create)
	ledgerGroup.Delete("/", RequireRole(RoleAdmin), ledgerHandler.Deactivate)

	// Movimientos de stock (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Get("/:code", movementHandler.GetByCode)
	movements.Delete("/:code", RequireRole(RoleAdmin), movementHandler.Deactivate)

	// Ajustes de stock (protegido). Aprobar y rechazar requieren rol.
	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/approve", RequireRole(RoleAdmin, RoleApprover), adjustmentHandler.Approve)
	adjustments.Post("/:id/reject", RequireRole(RoleAdmin, RoleApprover), adjustmentHandler.Reject)
	adjustments.Delete("/:id", adjustmentHandler.Delete)

	// Reservas de stock sobre órdenes de venta (protegido)
	orders := protected.Group("/orders")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	orders.Post("/:id/reserve", reservationHandler.Reserve)
	orders.Post("/:id/release", reservationHandler.Release)

	// Warehouses (protegido). Escrituras solo para admin.
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/zones", warehouseHandler.ListZones)
	warehouses.Post("/", RequireRole(RoleAdmin), warehouseHandler.Create)
	warehouses.Put("/:id", RequireRole(RoleAdmin), warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(RoleAdmin), warehouseHandler.Deactivate)
	warehouses.Post("/:id/zones", RequireRole(RoleAdmin), warehouseHandler.CreateZone)
}
