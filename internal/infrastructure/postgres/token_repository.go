package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-console/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepository)(nil)

// TokenRepository guarda el token en console_sessions, una fila por nombre de sesión.
type TokenRepository struct {
	pool *pgxpool.Pool
	name string
}

// NewTokenRepository construye el repositorio.
func NewTokenRepository(pool *pgxpool.Pool, name string) *TokenRepository {
	return &TokenRepository{pool: pool, name: name}
}

func (r *TokenRepository) Load(ctx context.Context) (string, error) {
	var token string
	err := r.pool.QueryRow(ctx, `SELECT token FROM console_sessions WHERE name = $1`, r.name).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("postgres: cargar sesión: %w", err)
	}
	return token, nil
}

func (r *TokenRepository) Save(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO console_sessions (name, token, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET token = EXCLUDED.token, updated_at = now()`,
		r.name, token)
	if err != nil {
		return fmt.Errorf("postgres: guardar sesión: %w", err)
	}
	return nil
}

func (r *TokenRepository) Delete(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM console_sessions WHERE name = $1`, r.name); err != nil {
		return fmt.Errorf("postgres: borrar sesión: %w", err)
	}
	return nil
}
