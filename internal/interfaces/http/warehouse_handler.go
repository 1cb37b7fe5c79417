package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/molino-inventario/internal/application/dto"
	"github.com/jhoicas/molino-inventario/internal/application/warehouse"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// WarehouseHandler endpoints de administración de bodegas y zonas.
type WarehouseHandler struct {
	useCase *warehouse.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(useCase *warehouse.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{useCase: useCase}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201  {object}  dto.WarehouseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	w, err := h.useCase.Create(c.Context(), in.Name, in.Location)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toWarehouseResponse(w))
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	w, err := h.useCase.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toWarehouseResponse(w))
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	warehouses, err := h.useCase.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, toWarehouseResponse(w))
	}
	return c.JSON(fiber.Map{"total": len(out), "warehouses": out})
}

// Update godoc
// @Summary      Actualizar bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la bodega"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	w, err := h.useCase.Update(c.Context(), c.Params("id"), in.Name, in.Location)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toWarehouseResponse(w))
}

// Deactivate godoc
// @Summary      Desactivar bodega (borrado lógico)
// @Tags         warehouses
// @Security     Bearer
// @Param        id  path  string  true  "ID de la bodega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [delete]
func (h *WarehouseHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.useCase.Deactivate(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateZone godoc
// @Summary      Crear zona de almacenamiento
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la bodega"
// @Param        body  body  dto.CreateZoneRequest  true  "Nombre de la zona"
// @Success      201  {object}  dto.ZoneResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/zones [post]
func (h *WarehouseHandler) CreateZone(c *fiber.Ctx) error {
	var in dto.CreateZoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	zone, err := h.useCase.CreateZone(c.Context(), c.Params("id"), in.Name)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toZoneResponse(zone))
}

// ListZones godoc
// @Summary      Listar zonas de una bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {array}  dto.ZoneResponse
// @Router       /api/warehouses/{id}/zones [get]
func (h *WarehouseHandler) ListZones(c *fiber.Ctx) error {
	zones, err := h.useCase.ListZones(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, toZoneResponse(z))
	}
	return c.JSON(fiber.Map{"total": len(out), "zones": out})
}

func toWarehouseResponse(w *entity.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Location:  w.Location,
		CreatedAt: w.CreatedAt,
	}
}

func toZoneResponse(z *entity.StorageZone) dto.ZoneResponse {
	return dto.ZoneResponse{ID: z.ID, WarehouseID: z.WarehouseID, Name: z.Name}
}
