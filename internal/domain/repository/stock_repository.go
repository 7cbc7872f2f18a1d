package repository

import (
	"context"

	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// StockRepository puerto del resumen global de stock.
type StockRepository interface {
	Summary(ctx context.Context) (*entity.StockSummary, error)
}
