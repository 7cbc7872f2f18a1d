package ports

import (
	"context"

	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// JournalExport filas del journal ya resueltas para exportar.
type JournalExport struct {
	Title   string
	Filters string // descripción legible de los filtros aplicados
	Columns JournalColumns
	Rows    []JournalRow
}

// JournalColumns encabezados localizados.
type JournalColumns struct {
	CreatedAt          string
	Operation          string
	Barcode            string
	GTIN               string
	Quantity           string
	Source             string
	DistributionCenter string
	Notes              string
}

// JournalRow una fila del journal con textos ya localizados.
type JournalRow struct {
	CreatedAt      string
	OperationLabel string
	Movement       entity.Movement
}

// JournalExporter genera un documento descargable (XLSX, PDF).
type JournalExporter interface {
	Format() string
	ContentType() string
	Export(ctx context.Context, doc JournalExport) ([]byte, error)
}
