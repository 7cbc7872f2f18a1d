package ports

import (
	"context"
	"time"
)

// Level severidad de una notificación al operador.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Rank orden de severidad para filtrar sinks (info < success < error).
func (l Level) Rank() int {
	switch l {
	case LevelError:
		return 2
	case LevelSuccess:
		return 1
	default:
		return 0
	}
}

// Notification mensaje ya localizado.
type Notification struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier canal de notificaciones al operador. No bloquea a quien notifica.
type Notifier interface {
	Notify(level Level, message string)
}

// NotificationSink destino externo de notificaciones (log, Telegram...).
type NotificationSink interface {
	Name() string
	Deliver(ctx context.Context, n Notification) error
}
