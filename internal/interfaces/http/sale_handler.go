package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/usecase"
	"github.com/jhoicas/tienda-backoffice/internal/domain"
)

// SaleHandler maneja la vista de ventas (protegido).
type SaleHandler struct {
	uc *usecase.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// List godoc
// @Summary      Listar ventas
// @Description  Consulta viva sobre pedidos entregados; no hay tabla de ventas.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda por cliente"
// @Param        from       query  string  false  "YYYY-MM-DD sobre deliveredAt"
// @Param        to         query  string  false  "YYYY-MM-DD inclusivo"
// @Param        partnerId  query  string  false  "Filtrar por vendedor"
// @Param        courierId  query  string  false  "Filtrar por repartidor"
// @Success      200        {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.SalesListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TogglePaid godoc
// @Summary      Alternar flag de pago de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido entregado"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/toggle-paid [post]
func (h *SaleHandler) TogglePaid(c *fiber.Ctx) error {
	return h.toggle(c, h.uc.TogglePaid)
}

// ToggleInvoiceSent godoc
// @Summary      Alternar flag de factura emitida de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido entregado"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/toggle-invoice [post]
func (h *SaleHandler) ToggleInvoiceSent(c *fiber.Ctx) error {
	return h.toggle(c, h.uc.ToggleInvoiceSent)
}

func (h *SaleHandler) toggle(c *fiber.Ctx, fn func(ctx context.Context, id string) (*dto.SaleResponse, error)) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := fn(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
