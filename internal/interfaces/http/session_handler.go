package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-console/internal/application/dto"
	"github.com/jhoicas/stock-console/internal/application/session"
)

// SessionHandler login/logout de la consola contra el backend.
type SessionHandler struct {
	store *session.Store
}

// NewSessionHandler construye el handler.
func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// Login godoc
// @Summary      Iniciar sesión en el backend
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/console/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.store.Login(c.Context(), in.Email, in.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SessionFromState(h.store.Snapshot()))
}

// Logout godoc
// @Summary      Cerrar sesión (idempotente)
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/console/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.store.Logout(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SessionFromState(h.store.Snapshot()))
}

// Get godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/console/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.SessionFromState(h.store.Snapshot()))
}
