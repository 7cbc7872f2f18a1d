package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-console/internal/application/dto"
)

// sessionChecker lo implementa *session.Store.
type sessionChecker interface {
	Authenticated() bool
}

// RequireSession corta con 401 UNAUTHENTICATED si la consola no tiene sesión
// contra el backend (nunca hubo login, logout o 401 del backend).
func RequireSession(s sessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHENTICATED",
				Message: "sesión no iniciada",
			})
		}
		return c.Next()
	}
}
