package repository

import (
	"context"

	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo (DIP).
type ProductRepository interface {
	// List devuelve una página; barcode vacío = sin filtro (coincidencia parcial en el backend).
	List(ctx context.Context, q entity.PageQuery, barcode string) (*entity.Page[entity.Product], error)
}
