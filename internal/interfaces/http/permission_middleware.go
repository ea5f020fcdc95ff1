package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
)

// RequirePermission devuelve un middleware Fiber que exige una capacidad
// "module.action" del catálogo. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 → no hay usuario en el contexto.
//   - 403 → la capacidad está denegada (el admin siempre pasa).
//
// Cualquier ruta fuera del catálogo deniega: ante la duda, se cierra.
func RequirePermission(path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no autenticado"})
		}
		if !user.Can(path, "") {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acción no permitida"})
		}
		return c.Next()
	}
}

// RequireAnyPermission pasa si alguna de las capacidades está permitida.
// Útil para rutas compartidas entre módulos (p. ej. ventas la ven quienes
// tienen sales.view u orders.view).
func RequireAnyPermission(paths ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no autenticado"})
		}
		if !user.CanAny(paths...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acción no permitida"})
		}
		return c.Next()
	}
}
