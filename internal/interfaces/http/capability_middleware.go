package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// RequireCapability verifica una capacidad del rol (ej. entity.Role.CanManageUsers).
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si la sesión no trae un rol válido.
//   - 403 si el rol no tiene la capacidad.
func RequireCapability(name string, has func(entity.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := entity.ParseRole(GetRole(c))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "la sesión no tiene un rol válido",
			})
		}
		if !has(role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol " + string(role) + " no puede " + name,
			})
		}
		return c.Next()
	}
}
