package repository

import (
	"context"

	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// SourceRepository listado completo de orígenes (ПВЗ).
type SourceRepository interface {
	List(ctx context.Context) ([]entity.Source, error)
}

// DistributionCenterRepository listado completo de centros de distribución (РЦ).
type DistributionCenterRepository interface {
	List(ctx context.Context) ([]entity.DistributionCenter, error)
}
