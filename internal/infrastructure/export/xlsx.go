package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
)

var _ appvaluation.Exporter = (*XLSXExporter)(nil)

const (
	valuationSheet = "Valuation"
	summarySheet   = "Summary"
)

// numericColumns índices (0-based) de ExportColumns que se escriben como número.
var numericColumns = map[int]bool{4: true, 5: true, 6: true, 7: true, 8: true}

type colWidth struct {
	col   string
	width float64
}

var (
	valuationWidths = []colWidth{{"A", 32}, {"J", 60}}
	summaryWidths   = []colWidth{{"A", 24}}
)

// XLSXExporter escribe una hoja con las filas (mismas columnas que el CSV)
// y una hoja de resumen con los totales.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador Excel.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (*XLSXExporter) Format() string { return "xlsx" }
func (*XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (*XLSXExporter) FileExtension() string { return "xlsx" }

// Write serializa doc en w.
func (*XLSXExporter) Write(w io.Writer, doc appvaluation.ExportDocument) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", valuationSheet); err != nil {
		return fmt.Errorf("xlsx: hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}

	for c, h := range doc.Columns {
		if err := setCell(f, valuationSheet, c+1, 1, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(doc.Columns), 1)
	if err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}
	if err := f.SetCellStyle(valuationSheet, "A1", last, bold); err != nil {
		return fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}

	for i, r := range doc.Records {
		rowNo := i + 2
		for c, v := range r.Strings() {
			var value interface{} = v
			if numericColumns[c] {
				value = numericValue(r, c)
			}
			if err := setCell(f, valuationSheet, c+1, rowNo, value); err != nil {
				return err
			}
		}
	}
	if err := setWidths(f, valuationSheet, valuationWidths); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	summary := [][2]interface{}{
		{"As On Date", doc.AsOnDate},
		{"Product Count", doc.Totals.ProductCount},
		{"Total Stock Qty", doc.Totals.TotalStockQty.InexactFloat64()},
		{"Total FIFO Value", doc.Totals.TotalFIFOValue.InexactFloat64()},
		{"Total Weighted Value", doc.Totals.TotalWeightedValue.InexactFloat64()},
	}
	for i, kv := range summary {
		if err := setCell(f, summarySheet, 1, i+1, kv[0]); err != nil {
			return err
		}
		if err := setCell(f, summarySheet, 2, i+1, kv[1]); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return fmt.Errorf("xlsx: estilo resumen: %w", err)
	}
	if err := setWidths(f, summarySheet, summaryWidths); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

func numericValue(r appvaluation.ExportRecord, col int) float64 {
	switch col {
	case 4:
		return r.TotalQty.InexactFloat64()
	case 5:
		return r.AvgCost.InexactFloat64()
	case 6:
		return r.WeightedValue.InexactFloat64()
	case 7:
		return r.FIFOValue.InexactFloat64()
	default:
		return r.TotalPurchasedQty.InexactFloat64()
	}
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("xlsx: %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, widths []colWidth) error {
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.col, w.col, w.width); err != nil {
			return fmt.Errorf("xlsx: ancho %s!%s: %w", sheet, w.col, err)
		}
	}
	return nil
}
