package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/molino-inventario/internal/application/dto"
	"github.com/jhoicas/molino-inventario/internal/application/ledger"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
	"github.com/jhoicas/molino-inventario/internal/domain/inventory"
)

// LedgerHandler expone el Ledger Store: consulta de asientos, alta explícita y
// reportes de solo lectura (stock bajo, sobre-stock, reorden, valorización).
type LedgerHandler struct {
	store *ledger.Store
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(store *ledger.Store) *LedgerHandler {
	return &LedgerHandler{store: store}
}

// Create godoc
// @Summary      Crear asiento del ledger de forma explícita
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLedgerEntryRequest  true  "product_id, warehouse_id, unit_cost, niveles"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ledger [post]
func (h *LedgerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.store.Create(c.Context(), &entity.LedgerEntry{
		ProductID:    in.ProductID,
		WarehouseID:  in.WarehouseID,
		ZoneID:       in.ZoneID,
		UnitCost:     in.UnitCost,
		MinimumLevel: in.MinimumLevel,
		MaximumLevel: in.MaximumLevel,
		ReorderLevel: in.ReorderLevel,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Get godoc
// @Summary      Consultar asiento por producto, bodega y zona
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "Producto"
// @Param        warehouse_id  query  string  true   "Bodega"
// @Param        zone_id       query  string  false  "Zona"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/entry [get]
func (h *LedgerHandler) Get(c *fiber.Ctx) error {
	e, err := h.store.Get(c.Context(), c.Query("product_id"), c.Query("warehouse_id"), c.Query("zone_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toLedgerEntryResponse(e))
}

// List godoc
// @Summary      Listar asientos activos
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/ledger [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	entries, err := h.store.ListActive(c.Context(), c.Query("warehouse_id"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": toLedgerEntryResponses(entries)})
}

// LowStock godoc
// @Summary      Asientos por debajo del nivel mínimo
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/ledger/low-stock [get]
func (h *LedgerHandler) LowStock(c *fiber.Ctx) error {
	entries, err := h.store.ListLowStock(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": toLedgerEntryResponses(entries)})
}

// Overstock godoc
// @Summary      Asientos en o sobre el nivel máximo
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/ledger/overstock [get]
func (h *LedgerHandler) Overstock(c *fiber.Ctx) error {
	entries, err := h.store.ListOverstock(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": toLedgerEntryResponses(entries)})
}

// Reorder godoc
// @Summary      Asientos entre el mínimo y el punto de reorden
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/ledger/reorder [get]
func (h *LedgerHandler) Reorder(c *fiber.Ctx) error {
	entries, err := h.store.ListReorder(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": toLedgerEntryResponses(entries)})
}

// Valuation godoc
// @Summary      Valorización del inventario, global y por bodega
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationResponse
// @Router       /api/ledger/valuation [get]
func (h *LedgerHandler) Valuation(c *fiber.Ctx) error {
	total, err := h.store.TotalValuation(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	byWarehouse, err := h.store.ValuationByWarehouse(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	out := dto.ValuationResponse{Total: total}
	for _, v := range byWarehouse {
		out.Warehouses = append(out.Warehouses, dto.WarehouseValuationResponse{
			WarehouseID: v.WarehouseID,
			Entries:     v.Entries,
			TotalValue:  v.TotalValue,
		})
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar un asiento (borrado lógico)
// @Tags         ledger
// @Security     Bearer
// @Param        product_id    query  string  true   "Producto"
// @Param        warehouse_id  query  string  true   "Bodega"
// @Param        zone_id       query  string  false  "Zona"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger [delete]
func (h *LedgerHandler) Deactivate(c *fiber.Ctx) error {
	err := h.store.Deactivate(c.Context(), c.Query("product_id"), c.Query("warehouse_id"), c.Query("zone_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toLedgerEntryResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ProductID:      e.ProductID,
		WarehouseID:    e.WarehouseID,
		ZoneID:         e.ZoneID,
		AvailableStock: e.AvailableStock,
		ReservedStock:  e.ReservedStock,
		CurrentStock:   e.CurrentStock(),
		UnitCost:       e.UnitCost,
		TotalValue:     e.TotalValue,
		MinimumLevel:   e.MinimumLevel,
		MaximumLevel:   e.MaximumLevel,
		ReorderLevel:   e.ReorderLevel,
		Status:         string(inventory.ClassifyStock(e)),
		LastMovementAt: e.LastMovementAt,
	}
}

func toLedgerEntryResponses(entries []*entity.LedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e))
	}
	return out
}
