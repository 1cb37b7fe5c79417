package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/molino-inventario/internal/application/reservation"
)

// ReservationHandler maneja reserva y liberación de stock por pedido (protegido).
// Lo invoca el módulo de ventas al confirmar o cancelar un pedido.
type ReservationHandler struct {
	uc *reservation.ReservationUseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *reservation.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Reserve godoc
// @Summary      Reservar stock para todos los renglones de un pedido (todo-o-nada)
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reserve [post]
func (h *ReservationHandler) Reserve(c *fiber.Ctx) error {
	if err := h.uc.ReserveStock(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock reservado"})
}

// Release godoc
// @Summary      Liberar el stock reservado de un pedido (cancelación)
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/release [post]
func (h *ReservationHandler) Release(c *fiber.Ctx) error {
	if err := h.uc.ReleaseStock(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock liberado"})
}
