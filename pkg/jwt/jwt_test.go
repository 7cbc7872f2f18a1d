package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/stock-console/pkg/jwt"
)

func TestInspect_LeeSubYExp(t *testing.T) {
	tok, err := pkgjwt.Generate("secret", "op@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "op@example.com", claims.Subject)
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(time.Now().Add(2*time.Hour)))
}

func TestInspect_TokenVencido(t *testing.T) {
	tok, err := pkgjwt.Generate("secret", "op@example.com", -time.Minute)
	require.NoError(t, err)

	claims, err := pkgjwt.Inspect(tok)
	require.NoError(t, err, "Inspect no valida exp, solo lo expone")
	assert.True(t, claims.Expired(time.Now()))
}

func TestInspect_TokenOpaco(t *testing.T) {
	_, err := pkgjwt.Inspect("no-es-un-jwt")
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "x", time.Minute)
	assert.Error(t, err)
}

func TestExpired_SinExp(t *testing.T) {
	var c pkgjwt.Claims
	assert.False(t, c.Expired(time.Now()))
}
