// Package pdf genera la versión imprimible del journal de movimientos con Maroto v2.
//
// Layout de la página A4 apaisada:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  TÍTULO                                  │  N° de filas       │
//	│  Filtros aplicados                                            │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Operación | Barcode | Cant. | Origen | CD | …   │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/internal/domain/entity"
)

var _ ports.JournalExporter = (*JournalGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const customFamily = "journal"

// Fonts rutas a fuentes TTF con cirílico. Vacías = helvetica.
type Fonts struct {
	Regular string
	Bold    string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// JournalGenerator implementa ports.JournalExporter usando Maroto v2.
type JournalGenerator struct {
	fonts Fonts
}

// NewJournalGenerator construye el generador.
func NewJournalGenerator(fonts Fonts) *JournalGenerator {
	return &JournalGenerator{fonts: fonts}
}

func (g *JournalGenerator) Format() string      { return "pdf" }
func (g *JournalGenerator) ContentType() string { return "application/pdf" }

// Export genera el PDF y devuelve sus bytes.
func (g *JournalGenerator) Export(_ context.Context, doc ports.JournalExport) ([]byte, error) {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle(doc.Title, true)

	family := "helvetica"
	if g.fonts.Regular != "" {
		bold := g.fonts.Bold
		if bold == "" {
			bold = g.fonts.Regular
		}
		fonts, err := repository.New().
			AddUTF8Font(customFamily, fontstyle.Normal, g.fonts.Regular).
			AddUTF8Font(customFamily, fontstyle.Bold, bold).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuentes: %w", err)
		}
		builder = builder.WithCustomFonts(fonts)
		family = customFamily
	}
	cfg := builder.WithDefaultFont(&props.Font{Family: family, Size: 8}).Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(doc.Columns))
	for i, r := range doc.Rows {
		m.AddRows(tableRow(i, r))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y filtros (izq), cantidad de filas (der).
func headerRow(doc ports.JournalExport) core.Row {
	return row.New(16).Add(
		col.New(9).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Filters, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(len(doc.Rows)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow(c ports.JournalColumns) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(c.CreatedAt, 2, align.Left),
		h(c.Operation, 2, align.Left),
		h(c.Barcode, 2, align.Left),
		h(c.Quantity, 1, align.Right),
		h(c.Source, 2, align.Left),
		h(c.DistributionCenter, 2, align.Left),
		h(c.Notes, 1, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow: una fila por movimiento; la operación lleva el color de su tipo.
func tableRow(i int, r ports.JournalRow) core.Row {
	m := r.Movement
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rw := row.New(6).Add(
		cell(r.CreatedAt, 2, align.Left),
		col.New(2).Add(text.New(r.OperationLabel, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
			Color: labelColor(m.OperationType),
		})),
		cell(nonEmpty(m.ProductBarcode, "—"), 2, align.Left),
		cell(strconv.Itoa(m.Quantity), 1, align.Right),
		cell(nonEmpty(m.SourceName, "—"), 2, align.Left),
		cell(nonEmpty(m.DCName, "—"), 2, align.Left),
		cell(m.Notes, 1, align.Left),
	)
	if i%2 == 1 {
		rw = rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return rw
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// hexColor convierte "#rrggbb"; cualquier otra cosa vuelve gris.
func hexColor(s string) *props.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return colorGray
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorGray
	}
	return &props.Color{Red: int(v >> 16 & 0xff), Green: int(v >> 8 & 0xff), Blue: int(v & 0xff)}
}

// labelColor color de la etiqueta de un tipo de operación.
func labelColor(op entity.OperationType) *props.Color {
	return hexColor(op.Color())
}
