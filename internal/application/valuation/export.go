package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/garage-valuation/internal/domain/valuation"
)

// ExportColumns orden fijo de columnas de toda exportación. Es un contrato con planillas
// de terceros: no reordenar.
var ExportColumns = []string{
	"Part",
	"SKU",
	"Category",
	"Unit",
	"Total Qty",
	"Avg Purchase Cost",
	"Weighted Value",
	"FIFO Value",
	"Total Purchased Qty",
	"Purchase History",
}

// ExportRecord fila tipada de exportación, en el orden de ExportColumns.
type ExportRecord struct {
	Part              string
	SKU               string
	Category          string
	Unit              string
	TotalQty          decimal.Decimal
	AvgCost           decimal.Decimal
	WeightedValue     decimal.Decimal
	FIFOValue         decimal.Decimal
	TotalPurchasedQty decimal.Decimal
	History           string
}

// Strings devuelve la fila como texto con escalas fijas (cantidad y dinero 2, costo 4).
func (r ExportRecord) Strings() []string {
	return []string{
		r.Part,
		r.SKU,
		r.Category,
		r.Unit,
		r.TotalQty.StringFixed(valuation.QuantityPlaces),
		r.AvgCost.StringFixed(valuation.CostPlaces),
		r.WeightedValue.StringFixed(valuation.MoneyPlaces),
		r.FIFOValue.StringFixed(valuation.MoneyPlaces),
		r.TotalPurchasedQty.StringFixed(valuation.QuantityPlaces),
		r.History,
	}
}

// ExportDocument contenido independiente del formato.
type ExportDocument struct {
	Title    string
	AsOnDate string
	Columns  []string
	Records  []ExportRecord
	Totals   valuation.Totals
}

// NewExportDocument arma el documento a partir del reporte ya calculado.
func NewExportDocument(asOnDate string, report valuation.Report) ExportDocument {
	cols := make([]string, len(ExportColumns))
	copy(cols, ExportColumns)

	records := make([]ExportRecord, 0, len(report.Rows))
	for _, r := range report.Rows {
		records = append(records, ExportRecord{
			Part:              r.PartName,
			SKU:               r.SKU,
			Category:          r.Category,
			Unit:              r.Unit,
			TotalQty:          r.StockQty,
			AvgCost:           r.AvgCost,
			WeightedValue:     r.WeightedValue,
			FIFOValue:         r.FIFOValue,
			TotalPurchasedQty: r.TotalPurchasedQty,
			History:           r.History,
		})
	}
	return ExportDocument{
		Title:    "Inventory Valuation",
		AsOnDate: asOnDate,
		Columns:  cols,
		Records:  records,
		Totals:   report.Totals,
	}
}

// ExportFile archivo listo para enviar.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
