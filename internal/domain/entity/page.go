package entity

// Page página de resultados tal como la devuelve el backend.
type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
	Pages    int
}

// PageQuery pedido de página; los valores no positivos se normalizan.
type PageQuery struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize aplica page >= 1 y 1 <= page_size <= 100.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}
