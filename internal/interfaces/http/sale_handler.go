package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/sales"
	"github.com/jmorales/ventaspro-api/internal/domain"
)

// SaleHandler maneja ventas y pagos de cuenta corriente.
type SaleHandler struct {
	completeUC *sales.CompleteSaleUseCase
	paymentUC  *sales.CustomerPaymentUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(completeUC *sales.CompleteSaleUseCase, paymentUC *sales.CustomerPaymentUseCase) *SaleHandler {
	return &SaleHandler{completeUC: completeUC, paymentUC: paymentUC}
}

// Complete godoc
// @Summary      Completar venta (atómica: venta + stock + cajas + cuenta corriente)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompleteSaleRequest  true  "Carrito y pagos"
// @Success      201   {object}  entity.Sale
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.completeUC.Execute(c.Context(), Sess(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientPayment):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_PAYMENT", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrPaymentMethodMissing):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNPROCESSABLE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas (snapshot en memoria de la sesión)
// @Tags         sales
// @Produce      json
// @Success      200  {array}  entity.Sale
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	return c.JSON(Sess(c).State().Sales())
}

// CustomerPayment godoc
// @Summary      Registrar pago de cuenta corriente (genera una pseudo-venta)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerPaymentRequest  true  "Cliente, caja y monto"
// @Success      201   {object}  entity.Sale
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers/payments [post]
func (h *SaleHandler) CustomerPayment(c *fiber.Ctx) error {
	var in dto.CustomerPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.paymentUC.Execute(c.Context(), Sess(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrPaymentMethodMissing):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNPROCESSABLE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
