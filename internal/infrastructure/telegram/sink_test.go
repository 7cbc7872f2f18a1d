package telegram_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/internal/infrastructure/telegram"
)

type fakeTelegram struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"console","username":"console_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		_ = r.ParseForm()
		f.mu.Lock()
		f.sent = append(f.sent, r.FormValue("chat_id")+":"+r.FormValue("text"))
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeTelegram) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func newSink(t *testing.T, min ports.Level) (*telegram.Sink, *fakeTelegram) {
	t.Helper()
	fake := &fakeTelegram{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithClient("TOKEN", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)
	return telegram.NewSink(api, 42, min, "almacén"), fake
}

func TestDeliver_FiltraPorNivel(t *testing.T) {
	sink, fake := newSink(t, ports.LevelSuccess)
	ctx := context.Background()

	require.NoError(t, sink.Deliver(ctx, ports.Notification{Level: ports.LevelInfo, Message: "info", At: time.Now()}))
	require.NoError(t, sink.Deliver(ctx, ports.Notification{Level: ports.LevelSuccess, Message: "Операция выполнена"}))
	require.NoError(t, sink.Deliver(ctx, ports.Notification{Level: ports.LevelError, Message: "Ошибка сети"}))

	assert.Equal(t, []string{
		"42:[almacén] ✅ Операция выполнена",
		"42:[almacén] ❗ Ошибка сети",
	}, fake.Sent())
}

func TestDeliver_ContextoCancelado(t *testing.T) {
	sink, fake := newSink(t, ports.LevelInfo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Deliver(ctx, ports.Notification{Level: ports.LevelError, Message: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.Sent())
}
