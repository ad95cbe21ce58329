package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/treasury"
	"github.com/jmorales/ventaspro-api/internal/application/usecase"
	"github.com/jmorales/ventaspro-api/internal/domain"
)

// TreasuryHandler maneja cajas, transferencias y gastos.
type TreasuryHandler struct {
	methodUC   *usecase.PaymentMethodUseCase
	transferUC *treasury.TransferUseCase
	expenseUC  *treasury.AddExpenseUseCase
}

// NewTreasuryHandler construye el handler.
func NewTreasuryHandler(methodUC *usecase.PaymentMethodUseCase, transferUC *treasury.TransferUseCase, expenseUC *treasury.AddExpenseUseCase) *TreasuryHandler {
	return &TreasuryHandler{methodUC: methodUC, transferUC: transferUC, expenseUC: expenseUC}
}

// ListMethods godoc
// @Summary      Listar cajas con sus balances
// @Tags         treasury
// @Produce      json
// @Success      200  {array}  entity.PaymentMethod
// @Router       /api/payment-methods [get]
func (h *TreasuryHandler) ListMethods(c *fiber.Ctx) error {
	return c.JSON(h.methodUC.List(Sess(c)))
}

// CreateMethod godoc
// @Summary      Crear caja (balance inicial 0)
// @Tags         treasury
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentMethodRequest  true  "Nombre y tipo"
// @Success      201   {object}  entity.PaymentMethod
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payment-methods [post]
func (h *TreasuryHandler) CreateMethod(c *fiber.Ctx) error {
	var in dto.CreatePaymentMethodRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.methodUC.Create(c.Context(), Sess(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y un type válido son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMethod godoc
// @Summary      Renombrar o cambiar tipo de una caja (el balance no se edita)
// @Tags         treasury
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la caja"
// @Param        body  body  dto.UpdatePaymentMethodRequest  true  "Campos a cambiar"
// @Success      200   {object}  entity.PaymentMethod
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payment-methods/{id} [put]
func (h *TreasuryHandler) UpdateMethod(c *fiber.Ctx) error {
	var in dto.UpdatePaymentMethodRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.methodUC.Update(c.Context(), Sess(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// DeleteMethod godoc
// @Summary      Borrar caja
// @Tags         treasury
// @Param        id  path  string  true  "ID de la caja"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-methods/{id} [delete]
func (h *TreasuryHandler) DeleteMethod(c *fiber.Ctx) error {
	if err := h.methodUC.Delete(c.Context(), Sess(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTransfers godoc
// @Summary      Listar transferencias entre cajas
// @Tags         treasury
// @Produce      json
// @Success      200  {array}  entity.Transfer
// @Router       /api/transfers [get]
func (h *TreasuryHandler) ListTransfers(c *fiber.Ctx) error {
	return c.JSON(Sess(c).State().Transfers())
}

// Transfer godoc
// @Summary      Transferir entre cajas (rechaza si el origen no cubre el monto)
// @Tags         treasury
// @Accept       json
// @Param        body  body  dto.TransferRequest  true  "Origen, destino y monto"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TreasuryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.transferUC.Execute(c.Context(), Sess(c), in); err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientFunds):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_FUNDS", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrPaymentMethodMissing):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNPROCESSABLE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListExpenses godoc
// @Summary      Listar asientos de gastos
// @Tags         treasury
// @Produce      json
// @Success      200  {array}  entity.Expense
// @Router       /api/expenses [get]
func (h *TreasuryHandler) ListExpenses(c *fiber.Ctx) error {
	return c.JSON(Sess(c).State().Expenses())
}

// AddExpense godoc
// @Summary      Registrar compra o pago a proveedor
// @Tags         treasury
// @Accept       json
// @Param        body  body  dto.AddExpenseRequest  true  "Asiento"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *TreasuryHandler) AddExpense(c *fiber.Ctx) error {
	var in dto.AddExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.expenseUC.Execute(c.Context(), Sess(c), in); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrPaymentMethodMissing):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNPROCESSABLE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
