package dto

import "github.com/jhoicas/stock-console/internal/application/ports"

// NotificationListResponse notificaciones pendientes para la UI.
type NotificationListResponse struct {
	Items []ports.Notification `json:"items"`
}
