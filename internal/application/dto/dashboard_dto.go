package dto

import (
	"time"

	"github.com/jhoicas/stock-console/internal/application/dashboard"
)

// StockSummaryResponse KPIs del almacén.
type StockSummaryResponse struct {
	TotalProducts int        `json:"total_products"`
	TotalStock    int        `json:"total_stock"`
	TotalDefect   int        `json:"total_defect"`
	LoadedAt      *time.Time `json:"loaded_at,omitempty"`
}

// ProductQueryDTO parámetros vigentes de la tabla de productos.
type ProductQueryDTO struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Barcode  string `json:"barcode"`
}

// DashboardQueryRequest body de PUT /api/console/dashboard/query.
// Barcode presente (aunque vacío) = nueva búsqueda y vuelta a la página 1.
type DashboardQueryRequest struct {
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Barcode  *string `json:"barcode"`
}

// DashboardResponse resumen + tabla. Errors trae el fallo de cada sección por separado.
type DashboardResponse struct {
	Summary  *StockSummaryResponse `json:"summary"`
	Query    ProductQueryDTO       `json:"query"`
	Products *ProductListResponse  `json:"products"`
	Errors   map[string]string     `json:"errors,omitempty"`
}

// DashboardFromSnapshot convierte la foto de la página.
func DashboardFromSnapshot(s dashboard.Snapshot) DashboardResponse {
	out := DashboardResponse{
		Query:    ProductQueryDTO{Page: s.Query.Page, PageSize: s.Query.PageSize, Barcode: s.Query.Barcode},
		Products: ProductPageFromEntity(s.Products),
	}
	if s.Summary != nil {
		out.Summary = &StockSummaryResponse{
			TotalProducts: s.Summary.TotalProducts,
			TotalStock:    s.Summary.TotalStock,
			TotalDefect:   s.Summary.TotalDefect,
			LoadedAt:      timeOrNil(s.SummaryAt),
		}
	}
	if s.SummaryErr != nil || s.ProductsErr != nil {
		out.Errors = map[string]string{}
		if s.SummaryErr != nil {
			out.Errors["summary"] = s.SummaryErr.Error()
		}
		if s.ProductsErr != nil {
			out.Errors["products"] = s.ProductsErr.Error()
		}
	}
	return out
}
