package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/usecase"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
)

// SettingsHandler maneja el perfil del negocio y el modo vendedor.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetProfile godoc
// @Summary      Obtener perfil del negocio
// @Tags         settings
// @Produce      json
// @Success      200  {object}  entity.StoreProfile
// @Router       /api/settings/profile [get]
func (h *SettingsHandler) GetProfile(c *fiber.Ctx) error {
	return c.JSON(h.uc.Profile(Sess(c)))
}

// SaveProfile godoc
// @Summary      Guardar perfil del negocio (documento completo, pisa el anterior)
// @Tags         settings
// @Accept       json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/profile [put]
func (h *SettingsHandler) SaveProfile(c *fiber.Ctx) error {
	var in entity.StoreProfile
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SaveProfile(c.Context(), Sess(c), in); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetRole godoc
// @Summary      Rol activo de la sesión
// @Tags         settings
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/settings/role [get]
func (h *SettingsHandler) GetRole(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"role": string(Sess(c).Role())})
}

// EnterSellerMode godoc
// @Summary      Bajar la sesión a modo vendedor
// @Tags         settings
// @Success      204
// @Router       /api/settings/role/seller [post]
func (h *SettingsHandler) EnterSellerMode(c *fiber.Ctx) error {
	Sess(c).SetRole(access.RoleSeller)
	return c.SendStatus(fiber.StatusNoContent)
}

// Elevate godoc
// @Summary      Volver a admin con el PIN del perfil (sin PIN configurado vale "0000")
// @Tags         settings
// @Accept       json
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/settings/role/elevate [post]
func (h *SettingsHandler) Elevate(c *fiber.Ctx) error {
	var in dto.ElevateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !Sess(c).Elevate(in.PIN) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_PIN", Message: "PIN incorrecto"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetThreshold godoc
// @Summary      Umbral de stock bajo
// @Tags         settings
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/settings/low-stock-threshold [get]
func (h *SettingsHandler) GetThreshold(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"threshold": h.uc.LowStockThreshold(Sess(c))})
}

// SaveThreshold godoc
// @Summary      Guardar umbral de stock bajo
// @Tags         settings
// @Accept       json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/low-stock-threshold [put]
func (h *SettingsHandler) SaveThreshold(c *fiber.Ctx) error {
	var in struct {
		Threshold int64 `json:"threshold"`
	}
	if err := c.BodyParser(&in); err != nil || in.Threshold < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "threshold inválido"})
	}
	if err := h.uc.SaveLowStockThreshold(c.Context(), Sess(c), in.Threshold); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
