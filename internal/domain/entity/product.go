package entity

import "time"

// Product artículo del catálogo del almacén con su stock actual.
// Stock y DefectStock los calcula el backend; la consola solo los muestra.
type Product struct {
	ID          string
	Barcode     string
	GTIN        string
	SellerSKU   string
	Size        string
	Brand       string
	Color       string
	Stock       int
	DefectStock int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OptionLabel texto del producto en el selector: "barcode | sku | marca".
func (p Product) OptionLabel() string {
	return p.Barcode + " | " + orDash(p.SellerSKU) + " | " + orDash(p.Brand)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
