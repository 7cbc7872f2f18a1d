package repository

import (
	"context"

	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// AuthRepository intercambio de credenciales y usuario actual contra el backend.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	Me(ctx context.Context) (*entity.User, error)
}
