package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-console/internal/application/notify"
	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/pkg/logger"
)

type recordingSink struct {
	mu  sync.Mutex
	got []ports.Notification
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Deliver(_ context.Context, n ports.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

func TestHub_DrainVaciaElBuffer(t *testing.T) {
	h := notify.NewHub(logger.Nop(), 10)
	h.Notify(ports.LevelError, "Ошибка сети")
	h.Notify(ports.LevelSuccess, "ok")

	got := h.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "Ошибка сети", got[0].Message)
	assert.Equal(t, ports.LevelError, got[0].Level)
	assert.NotEmpty(t, got[0].ID)

	assert.Empty(t, h.Drain())
}

func TestHub_CapacidadDescartaLasMasViejas(t *testing.T) {
	h := notify.NewHub(logger.Nop(), 2)
	h.Notify(ports.LevelInfo, "1")
	h.Notify(ports.LevelInfo, "2")
	h.Notify(ports.LevelInfo, "3")

	got := h.Pending()
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].Message)
	assert.Equal(t, "3", got[1].Message)
}

func TestHub_EntregaASinks(t *testing.T) {
	sink := &recordingSink{}
	h := notify.NewHub(logger.Nop(), 10, sink)
	ctx, cancel := context.WithCancel(context.Background())
	h.Start(ctx)

	h.Notify(ports.LevelError, "Ошибка сервера")

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	h.Wait()
}
