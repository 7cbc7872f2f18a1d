package entity

// StockSummary totales globales del almacén.
type StockSummary struct {
	TotalProducts int
	TotalStock    int
	TotalDefect   int
}
