package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/usecase"
	"github.com/jmorales/ventaspro-api/internal/domain"
)

// PartnerHandler maneja proveedores y clientes.
type PartnerHandler struct {
	supplierUC *usecase.SupplierUseCase
	customerUC *usecase.CustomerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(supplierUC *usecase.SupplierUseCase, customerUC *usecase.CustomerUseCase) *PartnerHandler {
	return &PartnerHandler{supplierUC: supplierUC, customerUC: customerUC}
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         partners
// @Produce      json
// @Success      200  {array}  entity.Supplier
// @Router       /api/suppliers [get]
func (h *PartnerHandler) ListSuppliers(c *fiber.Ctx) error {
	return c.JSON(h.supplierUC.List(Sess(c)))
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  entity.Supplier
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *PartnerHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.supplierUC.Create(c.Context(), Sess(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteSupplier godoc
// @Summary      Borrar proveedor
// @Tags         partners
// @Param        id  path  string  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *PartnerHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.supplierUC.Delete(c.Context(), Sess(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCustomers godoc
// @Summary      Listar clientes
// @Tags         partners
// @Produce      json
// @Success      200  {array}  entity.Customer
// @Router       /api/customers [get]
func (h *PartnerHandler) ListCustomers(c *fiber.Ctx) error {
	return c.JSON(h.customerUC.List(Sess(c)))
}

// CreateCustomer godoc
// @Summary      Crear cliente
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  entity.Customer
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *PartnerHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.customerUC.Create(c.Context(), Sess(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteCustomer godoc
// @Summary      Borrar cliente
// @Tags         partners
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *PartnerHandler) DeleteCustomer(c *fiber.Ctx) error {
	if err := h.customerUC.Delete(c.Context(), Sess(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
