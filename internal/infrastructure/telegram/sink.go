// Package telegram reenvía notificaciones del operador a un chat de operaciones.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jhoicas/stock-console/internal/application/ports"
)

var _ ports.NotificationSink = (*Sink)(nil)

var levelIcons = map[ports.Level]string{
	ports.LevelInfo:    "ℹ️",
	ports.LevelSuccess: "✅",
	ports.LevelError:   "❗",
}

// Sink envía al chat las notificaciones con nivel >= minLevel.
type Sink struct {
	api      *tgbotapi.BotAPI
	chatID   int64
	minLevel ports.Level
	prefix   string
}

// NewSink construye el sink sobre un bot ya autenticado (tgbotapi.NewBotAPI).
func NewSink(api *tgbotapi.BotAPI, chatID int64, minLevel ports.Level, prefix string) *Sink {
	return &Sink{api: api, chatID: chatID, minLevel: minLevel, prefix: prefix}
}

func (s *Sink) Name() string { return "telegram" }

// Deliver envía el mensaje. El cliente de Telegram no acepta contexto; se
// respeta al menos la cancelación previa al envío.
func (s *Sink) Deliver(ctx context.Context, n ports.Notification) error {
	if n.Level.Rank() < s.minLevel.Rank() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	text := levelIcons[n.Level] + " " + n.Message
	if s.prefix != "" {
		text = "[" + s.prefix + "] " + text
	}
	if _, err := s.api.Send(tgbotapi.NewMessage(s.chatID, text)); err != nil {
		return fmt.Errorf("telegram: enviar: %w", err)
	}
	return nil
}
