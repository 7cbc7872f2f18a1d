// Package excel exporta el journal de movimientos a XLSX con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-console/internal/application/ports"
)

var _ ports.JournalExporter = (*JournalExporter)(nil)

const sheetName = "Journal"

// JournalExporter genera una hoja con una fila por movimiento.
type JournalExporter struct{}

// NewJournalExporter construye el exportador.
func NewJournalExporter() *JournalExporter { return &JournalExporter{} }

func (e *JournalExporter) Format() string { return "xlsx" }

func (e *JournalExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export escribe título y filtros en las dos primeras filas, encabezados en la
// cuarta y los movimientos debajo.
func (e *JournalExporter) Export(ctx context.Context, doc ports.JournalExport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetName); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", doc.Title); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", bold); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}
	if doc.Filters != "" {
		if err := f.SetCellValue(sheetName, "A2", doc.Filters); err != nil {
			return nil, fmt.Errorf("excel: filtros: %w", err)
		}
	}

	c := doc.Columns
	header := []interface{}{c.CreatedAt, c.Operation, c.Barcode, c.GTIN, c.Quantity, c.Source, c.DistributionCenter, c.Notes}
	if err := f.SetSheetRow(sheetName, "A4", &header); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A4", "H4", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}

	row := 5
	for _, r := range doc.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := r.Movement
		values := []interface{}{
			r.CreatedAt,
			r.OperationLabel,
			m.ProductBarcode,
			m.ProductGTIN,
			m.Quantity,
			m.SourceName,
			m.DCName,
			m.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", row, err)
		}
		row++
	}

	if err := f.SetColWidth(sheetName, "A", "H", 18); err != nil {
		return nil, fmt.Errorf("excel: ancho: %w", err)
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 4, TopLeftCell: "A5", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("excel: panes: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
