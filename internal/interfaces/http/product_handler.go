package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/sales"
	"github.com/jmorales/ventaspro-api/internal/application/usecase"
	"github.com/jmorales/ventaspro-api/internal/domain"
)

// ProductHandler maneja el catálogo de productos.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	importUC *sales.ImportProductsUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, importUC *sales.ImportProductsUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, importUC: importUC}
}

// List godoc
// @Summary      Listar productos (búsqueda insensible a acentos, barcode exacto)
// @Tags         products
// @Produce      json
// @Param        q  query  string  false  "Texto o código de barras"
// @Success      200  {array}  entity.Product
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List(Sess(c), c.Query("q")))
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), Sess(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		// Rol sin permiso: la operación no tiene efecto.
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a cambiar"
// @Success      200   {object}  entity.Product
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), Sess(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar producto
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), Sess(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importar catálogo en lotes de 450 (no atómico entre lotes)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.ImportProductRequest  true  "Filas a importar"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	var rows []dto.ImportProductRequest
	if err := c.BodyParser(&rows); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera un array de productos"})
	}
	out, err := h.importUC.Execute(c.Context(), Sess(c), rows)
	if err != nil {
		// Los lotes ya aplicados quedan; el error describe cuántos entraron.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PARTIAL_IMPORT", Message: err.Error()})
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}
