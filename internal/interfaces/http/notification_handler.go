package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-console/internal/application/dto"
	"github.com/jhoicas/stock-console/internal/application/notify"
)

// NotificationHandler entrega a la UI las notificaciones pendientes.
type NotificationHandler struct {
	hub *notify.Hub
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// List godoc
// @Summary      Consumir notificaciones
// @Description  Devuelve y vacía el buffer. Con peek=true no lo vacía.
// @Tags         notifications
// @Produce      json
// @Param        peek  query  bool  false  "No consumir"
// @Success      200   {object}  dto.NotificationListResponse
// @Router       /api/console/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("peek") {
		return c.JSON(dto.NotificationListResponse{Items: h.hub.Pending()})
	}
	return c.JSON(dto.NotificationListResponse{Items: h.hub.Drain()})
}
