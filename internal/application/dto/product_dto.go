package dto

import (
	"time"

	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// ProductResponse producto con su stock actual.
type ProductResponse struct {
	ID          string     `json:"id"`
	Barcode     string     `json:"barcode"`
	GTIN        string     `json:"gtin,omitempty"`
	SellerSKU   string     `json:"seller_sku,omitempty"`
	Size        string     `json:"size,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Color       string     `json:"color,omitempty"`
	Stock       int        `json:"stock"`
	DefectStock int        `json:"defect_stock"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ProductListResponse respuesta paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	PageResponse
}

// ProductFromEntity convierte la entidad.
func ProductFromEntity(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Barcode:     p.Barcode,
		GTIN:        p.GTIN,
		SellerSKU:   p.SellerSKU,
		Size:        p.Size,
		Brand:       p.Brand,
		Color:       p.Color,
		Stock:       p.Stock,
		DefectStock: p.DefectStock,
		CreatedAt:   timeOrNil(p.CreatedAt),
		UpdatedAt:   timeOrNil(p.UpdatedAt),
	}
}

// ProductPageFromEntity convierte una página; nil = página vacía.
func ProductPageFromEntity(p *entity.Page[entity.Product]) *ProductListResponse {
	if p == nil {
		return nil
	}
	out := &ProductListResponse{
		Items:        make([]ProductResponse, 0, len(p.Items)),
		PageResponse: PageResponse{Page: p.Page, PageSize: p.PageSize, Total: p.Total, Pages: p.Pages},
	}
	for _, item := range p.Items {
		out.Items = append(out.Items, ProductFromEntity(item))
	}
	return out
}
