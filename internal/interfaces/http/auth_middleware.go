package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/pkg/jwt"
)

// Locals key para el usuario autenticado en Fiber.
const LocalUser = "current_user"

// userLoader es el contrato mínimo que necesita el middleware para cargar el
// usuario del token. Lo implementa repository.UserRepository; la interfaz
// evita acoplar el middleware al puerto completo.
type userLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT, carga el usuario desde la DB y
// lo deja en c.Locals ya normalizado. No existe usuario global: cada request
// resuelve su propio sujeto.
//
// Comportamiento:
//   - 401 → sin header, token inválido/expirado, o el usuario ya no existe.
//   - 403 → la cuenta está inactiva o suspendida.
//   - 503 → fallo de infraestructura al consultar la DB.
func AuthMiddleware(jwtSecret string, users userLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, _, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "USER_LOOKUP_FAILED", Message: "no se pudo verificar el usuario, intente más tarde"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNKNOWN_USER", Message: "el usuario del token ya no existe"})
		}
		if user.Status != "" && user.Status != entity.UserStatusActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva o suspendida"})
		}

		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// CurrentUser devuelve el usuario del contexto (después del middleware de auth).
func CurrentUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
