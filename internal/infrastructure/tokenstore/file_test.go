package tokenstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-console/internal/infrastructure/tokenstore"
)

func TestFileStore_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := tokenstore.NewFileStore(path)

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok, "sin archivo no hay token")

	require.NoError(t, s.Save(ctx, "jwt-1"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err = tokenstore.NewFileStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", tok)

	require.NoError(t, s.Delete(ctx))
	require.NoError(t, s.Delete(ctx), "Delete es idempotente")

	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestFileStore_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no json"), 0o600))

	_, err := tokenstore.NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}
