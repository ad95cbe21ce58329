package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/migration"
	"github.com/jmorales/ventaspro-api/internal/application/session"
)

// MigrationHandler copia los datos del modo invitado a la cuenta remota.
type MigrationHandler struct {
	uc  *migration.UseCase
	mgr *session.Manager
}

// NewMigrationHandler construye el handler.
func NewMigrationHandler(uc *migration.UseCase, mgr *session.Manager) *MigrationHandler {
	return &MigrationHandler{uc: uc, mgr: mgr}
}

// Migrate godoc
// @Summary      Migrar datos locales a la cuenta (repetirla duplica documentos)
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  migration.Result
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/migrate [post]
func (h *MigrationHandler) Migrate(c *fiber.Ctx) error {
	remote := Sess(c)
	if !access.Allowed(remote.Role(), access.PermMigrateData) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	var result *migration.Result
	err := remote.Run(func() error {
		var runErr error
		result, runErr = h.uc.Execute(c.Context(), h.mgr.Guest().Store(), remote.Store())
		return runErr
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "MIGRATION_FAILED", Message: err.Error()})
	}
	return c.JSON(result)
}
