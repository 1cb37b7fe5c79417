package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/molino-inventario/internal/application/adjustment"
	"github.com/jhoicas/molino-inventario/internal/application/dto"
	"github.com/jhoicas/molino-inventario/internal/domain/entity"
)

// AdjustmentHandler maneja las peticiones HTTP del flujo de ajustes (protegido).
type AdjustmentHandler struct {
	uc *adjustment.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *adjustment.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de ajuste de stock
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "product_id, warehouse_id, type (Increase/Decrease/Transfer), quantity, reason, requires_approval"
// @Success      201  {object}  dto.AdjustmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.uc.Create(c.Context(), adjustment.AdjustmentInput{
		ProductID:        in.ProductID,
		WarehouseID:      in.WarehouseID,
		ZoneID:           in.ZoneID,
		Type:             in.Type,
		Quantity:         in.Quantity,
		Reason:           in.Reason,
		RequiresApproval: in.RequiresApproval,
		UserID:           userID,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adj))
}

// Approve godoc
// @Summary      Aprobar un ajuste pendiente
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ajuste"
// @Param        body  body  dto.ApproveAdjustmentRequest  false  "remarks"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/approve [post]
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.ApproveAdjustmentRequest
	_ = c.BodyParser(&in) // remarks es opcional
	adj, err := h.uc.Approve(c.Context(), c.Params("id"), userID, in.Remarks)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// Reject godoc
// @Summary      Rechazar un ajuste pendiente
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ajuste"
// @Param        body  body  dto.RejectAdjustmentRequest  true  "reason"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/reject [post]
func (h *AdjustmentHandler) Reject(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.RejectAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.uc.Reject(c.Context(), c.Params("id"), userID, in.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// Delete godoc
// @Summary      Eliminar (desactivar) un ajuste no aprobado
// @Tags         adjustments
// @Security     Bearer
// @Param        id  path  string  true  "ID del ajuste"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [delete]
func (h *AdjustmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Consultar un ajuste
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	adj, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// List godoc
// @Summary      Listar ajustes
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        state  query  string  false  "Filtrar por estado (PendingApproval, Approved, Rejected)"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), entity.AdjustmentState(c.Query("state")), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, adj := range list {
		out = append(out, toAdjustmentResponse(adj))
	}
	return c.JSON(fiber.Map{"total": len(out), "adjustments": out})
}

func toAdjustmentResponse(a *entity.StockAdjustment) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:             a.ID,
		Code:           a.Code,
		ProductID:      a.ProductID,
		WarehouseID:    a.WarehouseID,
		ZoneID:         a.ZoneID,
		Type:           a.Type,
		Quantity:       a.Quantity,
		BeforeQuantity: a.BeforeQuantity,
		AfterQuantity:  a.AfterQuantity,
		Reason:         a.Reason,
		State:          string(a.State),
		ApprovedBy:     a.ApprovedBy,
		RejectedBy:     a.RejectedBy,
		ApprovedAt:     a.ApprovedAt,
		RejectedAt:     a.RejectedAt,
		Remarks:        a.Remarks,
		CreatedAt:      a.CreatedAt,
	}
}
