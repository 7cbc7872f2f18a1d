// Package notify implementa el canal de notificaciones al operador: guarda las
// recientes para que la UI las consuma y las reenvía a los sinks configurados.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/pkg/logger"
	"github.com/jhoicas/stock-console/pkg/metrics"
)

var _ ports.Notifier = (*Hub)(nil)

const (
	defaultCapacity = 50
	queueSize       = 64
	deliverTimeout  = 10 * time.Second
)

// Hub canal de notificaciones. Notify nunca bloquea: si la cola hacia los sinks
// está llena, la entrega externa se descarta (la notificación queda en el buffer).
type Hub struct {
	log   *logger.Logger
	sinks []ports.NotificationSink
	now   func() time.Time

	mu       sync.Mutex
	buf      []ports.Notification
	capacity int

	queue chan ports.Notification
	wg    sync.WaitGroup
}

// NewHub construye el hub; capacity <= 0 usa 50.
func NewHub(log *logger.Logger, capacity int, sinks ...ports.NotificationSink) *Hub {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Hub{
		log:      log.Named("notify"),
		sinks:    sinks,
		now:      time.Now,
		capacity: capacity,
		queue:    make(chan ports.Notification, queueSize),
	}
}

// Notify registra la notificación y la encola para los sinks.
func (h *Hub) Notify(level ports.Level, message string) {
	n := ports.Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      h.now(),
	}
	metrics.Notifications.WithLabelValues(string(level)).Inc()

	h.mu.Lock()
	h.buf = append(h.buf, n)
	if over := len(h.buf) - h.capacity; over > 0 {
		h.buf = append(h.buf[:0:0], h.buf[over:]...)
	}
	h.mu.Unlock()

	if len(h.sinks) == 0 {
		return
	}
	select {
	case h.queue <- n:
	default:
		h.log.Warn().Str("level", string(level)).Msg("cola de notificaciones llena, se omite la entrega externa")
	}
}

// Drain devuelve las notificaciones pendientes y vacía el buffer.
func (h *Hub) Drain() []ports.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.buf
	h.buf = nil
	if out == nil {
		return []ports.Notification{}
	}
	return out
}

// Pending copia de las notificaciones sin consumir.
func (h *Hub) Pending() []ports.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ports.Notification, len(h.buf))
	copy(out, h.buf)
	return out
}

// Start lanza el worker que entrega a los sinks hasta que ctx se cancela.
func (h *Hub) Start(ctx context.Context) {
	if len(h.sinks) == 0 {
		return
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-h.queue:
				h.deliver(ctx, n)
			}
		}
	}()
}

// Wait espera a que el worker termine (tras cancelar el ctx de Start).
func (h *Hub) Wait() { h.wg.Wait() }

func (h *Hub) deliver(ctx context.Context, n ports.Notification) {
	for _, s := range h.sinks {
		dctx, cancel := context.WithTimeout(ctx, deliverTimeout)
		if err := s.Deliver(dctx, n); err != nil {
			h.log.Error().Err(err).Str("sink", s.Name()).Str("id", n.ID).Msg("entrega de notificación")
		}
		cancel()
	}
}

// ── Sink de log ───────────────────────────────────────────────────────────────

// LogSink escribe cada notificación en el log estructurado.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink construye el sink.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log.Named("notifications")}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(_ context.Context, n ports.Notification) error {
	ev := s.log.Info()
	if n.Level == ports.LevelError {
		ev = s.log.Warn()
	}
	ev.Str("id", n.ID).Str("level", string(n.Level)).Msg(n.Message)
	return nil
}
