package tokenstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-console/internal/infrastructure/tokenstore"
)

// Requiere un Redis real: TEST_REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/tokenstore
func TestRedisStore_Integracion(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	ctx := context.Background()

	rdb, err := tokenstore.NewRedisClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer rdb.Close()

	s := tokenstore.NewRedisStore(rdb, "test-"+t.Name(), time.Minute)
	t.Cleanup(func() { _ = s.Delete(context.Background()) })

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok, "sin clave no hay token")

	require.NoError(t, s.Save(ctx, "abc"))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, s.Delete(ctx))
	require.NoError(t, s.Delete(ctx), "borrar dos veces no falla")
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestNewRedisClient_SinServidor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := tokenstore.NewRedisClient(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
