package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/pkg/jwt"
)

// Locals keys para la sesión resuelta en Fiber.
const (
	LocalUserID  = "user_id"
	LocalSession = "session"
)

// SessionMiddleware resuelve la sesión de cada petición. Con Bearer token
// válido se usa la sesión remota del usuario; sin header Authorization se
// opera como invitado contra el backend local. Token presente pero inválido
// corta con 401: nunca se degrada en silencio a invitado.
func SessionMiddleware(mgr *session.Manager, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Locals(LocalSession, mgr.Guest())
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if !mgr.RemoteEnabled() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REMOTE_DISABLED", Message: "backend remoto no configurado"})
		}
		s, err := mgr.ForUser(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo abrir la sesión"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// RequireAuth exige que la sesión sea remota (token presente). Se usa en las
// rutas que no tienen sentido como invitado, como logout y migración.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (vacío en modo invitado).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Sess devuelve la sesión resuelta por el middleware.
func Sess(c *fiber.Ctx) *session.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
