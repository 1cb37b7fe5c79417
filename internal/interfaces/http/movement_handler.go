package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/molino-inventario/internal/application/dto"
	"github.com/jhoicas/molino-inventario/internal/application/movement"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type MovementHandler struct {
	uc *movement.RecordMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.RecordMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, warehouse_id, type (IN/OUT), category, quantity, unit_cost (entradas)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	code, err := h.uc.RecordMovement(c.Context(), movement.MovementInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		ZoneID:      in.ZoneID,
		Type:        in.Type,
		Category:    in.Category,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Reference:   in.Reference,
		Notes:       in.Notes,
		UserID:      userID,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"code": code})
}

// GetByCode godoc
// @Summary      Consultar movimiento por código
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código STM%04d"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{code} [get]
func (h *MovementHandler) GetByCode(c *fiber.Ctx) error {
	mov, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toMovementResponse(mov))
}

// List godoc
// @Summary      Historial de movimientos por producto o bodega
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        from          query  string  false  "Fecha desde (RFC3339)"
// @Param        to            query  string  false  "Fecha hasta (RFC3339)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	from := parseTimeQuery(c.Query("from"))
	to := parseTimeQuery(c.Query("to"))

	var (
		movs []*entity.StockMovement
		err  error
	)
	switch {
	case c.Query("product_id") != "":
		movs, err = h.uc.ListByProduct(c.Context(), c.Query("product_id"), from, to, page.Limit, page.Offset)
	case c.Query("warehouse_id") != "":
		movs, err = h.uc.ListByWarehouse(c.Context(), c.Query("warehouse_id"), from, to, page.Limit, page.Offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere product_id o warehouse_id"})
	}
	if err != nil {
		return domainError(c, err)
	}

	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// Deactivate godoc
// @Summary      Desactivar movimiento (no revierte el ledger)
// @Tags         movements
// @Security     Bearer
// @Param        code  path  string  true  "Código STM%04d"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{code} [delete]
func (h *MovementHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("code")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		Code:        m.Code,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		ZoneID:      m.ZoneID,
		Type:        m.Type,
		Category:    m.Category,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost,
		Reference:   m.Reference,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

func parseTimeQuery(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
