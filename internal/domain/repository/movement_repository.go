package repository

import (
	"context"

	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// MovementRepository puerto del journal de movimientos.
// Create es una única llamada indivisible; la consola no reintenta ni compensa.
type MovementRepository interface {
	List(ctx context.Context, q entity.PageQuery, f entity.MovementFilter) (*entity.Page[entity.Movement], error)
	Create(ctx context.Context, m entity.NewMovement) (*entity.Movement, error)
}
