package repository

import "context"

// TokenRepository persistencia del access token entre reinicios de la consola.
// Es lo único que se persiste de la sesión.
type TokenRepository interface {
	// Load devuelve "" sin error si no hay token guardado.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	// Delete es idempotente.
	Delete(ctx context.Context) error
}
