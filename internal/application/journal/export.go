package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/pkg/i18n"
	"github.com/jhoicas/stock-console/pkg/logger"
)

const (
	exportPageSize = entity.MaxPageSize
	maxExportRows  = 5000
)

// ExportService exporta el journal completo con los filtros vigentes de la vista.
type ExportService struct {
	view      *View
	texts     *i18n.Catalog
	log       *logger.Logger
	now       func() time.Time
	exporters map[string]ports.JournalExporter
}

// NewExportService registra los formatos disponibles (xlsx, pdf...).
func NewExportService(view *View, texts *i18n.Catalog, log *logger.Logger, exporters ...ports.JournalExporter) *ExportService {
	m := make(map[string]ports.JournalExporter, len(exporters))
	for _, e := range exporters {
		m[e.Format()] = e
	}
	return &ExportService{view: view, texts: texts, log: log.Named("journal_export"), now: time.Now, exporters: m}
}

// File documento generado.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
	Truncated   bool
}

// Export recorre todas las páginas (hasta 5000 filas) y genera el documento.
func (s *ExportService) Export(ctx context.Context, format string) (*File, error) {
	exp, ok := s.exporters[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("journal: formato de exportación %q: %w", format, domain.ErrInvalidInput)
	}

	filters := s.view.Query().Filters
	var (
		rows      []ports.JournalRow
		truncated bool
	)
	for page := 1; ; page++ {
		res, err := s.view.repo.List(ctx, entity.PageQuery{Page: page, PageSize: exportPageSize}, filters)
		if err != nil {
			return nil, fmt.Errorf("journal: exportar página %d: %w", page, err)
		}
		for _, m := range res.Items {
			if len(rows) == maxExportRows {
				truncated = true
				break
			}
			rows = append(rows, ports.JournalRow{
				CreatedAt:      m.CreatedAt.Format("02.01.2006 15:04"),
				OperationLabel: s.texts.T(m.OperationType.LabelKey()),
				Movement:       m,
			})
		}
		if truncated || page >= res.Pages || len(res.Items) == 0 {
			break
		}
	}

	data, err := exp.Export(ctx, ports.JournalExport{
		Title:   s.texts.T("view.journal"),
		Filters: s.describe(filters),
		Columns: ports.JournalColumns{
			CreatedAt:          s.texts.T("col.created_at"),
			Operation:          s.texts.T("col.operation"),
			Barcode:            s.texts.T("col.barcode"),
			GTIN:               s.texts.T("col.gtin"),
			Quantity:           s.texts.T("col.quantity"),
			Source:             s.texts.T("col.source"),
			DistributionCenter: s.texts.T("col.dc"),
			Notes:              s.texts.T("col.notes"),
		},
		Rows: rows,
	})
	if err != nil {
		return nil, fmt.Errorf("journal: generar %s: %w", exp.Format(), err)
	}
	if truncated {
		s.log.Warn().Int("rows", len(rows)).Msg("exportación truncada")
	}
	return &File{
		Name:        fmt.Sprintf("journal_%s.%s", s.now().Format("20060102_150405"), exp.Format()),
		ContentType: exp.ContentType(),
		Data:        data,
		Rows:        len(rows),
		Truncated:   truncated,
	}, nil
}

// Formats formatos registrados.
func (s *ExportService) Formats() []string {
	out := make([]string, 0, len(s.exporters))
	for f := range s.exporters {
		out = append(out, f)
	}
	return out
}

func (s *ExportService) describe(f entity.MovementFilter) string {
	var parts []string
	if f.OperationType != nil {
		parts = append(parts, s.texts.T(f.OperationType.LabelKey()))
	}
	if f.HasDateRange() {
		parts = append(parts, f.DateFrom.Format("2006-01-02")+" – "+f.DateTo.Format("2006-01-02"))
	}
	if f.Barcode != "" {
		parts = append(parts, f.Barcode)
	}
	if f.ProductID != "" {
		parts = append(parts, f.ProductID)
	}
	if len(parts) == 0 {
		return ""
	}
	return s.texts.T("export.filters", strings.Join(parts, "; "))
}
