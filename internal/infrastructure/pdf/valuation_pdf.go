// Package pdf genera la versión imprimible del reporte de valoración de inventario.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de corte  │  cantidad de repuestos        │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: mismas columnas que el CSV                                │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TOTALES: stock / valor FIFO / valor ponderado                    │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// columnSizes ancho en la grilla de 12 de cada columna de ExportColumns.
var columnSizes = []int{2, 1, 1, 1, 1, 1, 1, 1, 1, 2}

var _ appvaluation.Exporter = (*ValuationPDFExporter)(nil)

// ── Exporter ──────────────────────────────────────────────────────────────────

// ValuationPDFExporter implementa appvaluation.Exporter usando Maroto v2.
type ValuationPDFExporter struct {
	company string
	lang    language.Tag
}

// NewValuationPDFExporter construye el exportador. company va en los metadatos del PDF.
func NewValuationPDFExporter(company string) *ValuationPDFExporter {
	return &ValuationPDFExporter{company: company, lang: language.English}
}

func (*ValuationPDFExporter) Format() string        { return "pdf" }
func (*ValuationPDFExporter) ContentType() string   { return "application/pdf" }
func (*ValuationPDFExporter) FileExtension() string { return "pdf" }

// Write genera el PDF y lo escribe en w.
func (e *ValuationPDFExporter) Write(w io.Writer, doc appvaluation.ExportDocument) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle(doc.Title, true).
		WithAuthor(e.company, true).
		Build()

	m := maroto.New(cfg)
	p := message.NewPrinter(e.lang)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(doc.Columns))
	for _, r := range tableRows(p, doc.Records) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(p, doc))

	pdfDoc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(pdfDoc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir: %w", err)
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc appvaluation.ExportDocument) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("As on "+doc.AsOnDate, props.Text{
				Size: 9, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d parts in stock", doc.Totals.ProductCount), props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(columns []string) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, label := range columns {
		cols = append(cols, col.New(size(i)).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: alignFor(i),
			Color: colorPrimary, Top: 1, Left: 0.5, Right: 0.5,
		})))
	}
	return row.New(7).Add(cols...)
}

func tableRows(p *message.Printer, records []appvaluation.ExportRecord) []core.Row {
	result := make([]core.Row, 0, len(records))
	for _, r := range records {
		values := []string{
			r.Part,
			r.SKU,
			r.Category,
			r.Unit,
			formatNumber(p, r.TotalQty, 2),
			formatNumber(p, r.AvgCost, 4),
			formatNumber(p, r.WeightedValue, 2),
			formatNumber(p, r.FIFOValue, 2),
			formatNumber(p, r.TotalPurchasedQty, 2),
			r.History,
		}
		cols := make([]core.Col, 0, len(values))
		for i, v := range values {
			cols = append(cols, col.New(size(i)).Add(text.New(v, props.Text{
				Size: 6.5, Align: alignFor(i), Top: 1, Left: 0.5, Right: 0.5,
			})))
		}
		result = append(result, row.New(6).Add(cols...))
	}
	return result
}

func totalsRow(p *message.Printer, doc appvaluation.ExportDocument) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2})
	}
	t := doc.Totals
	return row.New(8).Add(
		col.New(6),
		col.New(2).Add(label("Total Qty: "+formatNumber(p, t.TotalStockQty, 2))),
		col.New(2).Add(label("Weighted: "+formatNumber(p, t.TotalWeightedValue, 2))),
		col.New(2).Add(label("FIFO: "+formatNumber(p, t.TotalFIFOValue, 2))),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func size(i int) int {
	if i < len(columnSizes) {
		return columnSizes[i]
	}
	return 1
}

// alignFor alinea a la derecha las columnas numéricas (índices 4 a 8).
func alignFor(i int) align.Type {
	if i >= 4 && i <= 8 {
		return align.Right
	}
	return align.Left
}

// formatNumber redondea a places decimales y agrupa la parte entera con el
// separador de miles del idioma del printer. Ej: 1466.67 -> "1,466.67".
func formatNumber(p *message.Printer, d decimal.Decimal, places int32) string {
	fixed := d.Abs().StringFixed(places)
	frac := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		frac = fixed[i:]
	}
	sign := ""
	if d.Round(places).IsNegative() {
		sign = "-"
	}
	return sign + p.Sprintf("%d", d.Abs().Round(places).IntPart()) + frac
}
