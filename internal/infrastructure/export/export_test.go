package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
	"github.com/jhoicas/garage-valuation/internal/domain/valuation"
)

func sampleDocument() appvaluation.ExportDocument {
	report := valuation.Report{
		Rows: []valuation.Row{
			{
				PartID: "p-1", PartName: "Filtro, aceite", SKU: "FA-1", Unit: "und", Category: "Filtros",
				StockQty: decimal.NewFromInt(3), AvgCost: decimal.RequireFromString("106.6667"),
				WeightedValue: decimal.RequireFromString("320"), FIFOValue: decimal.RequireFromString("360"),
				TotalPurchasedQty: decimal.NewFromInt(15), History: "2026-01-02 @ 120.00; 2026-01-01 @ 100.00",
			},
			{
				PartID: "p-2", PartName: "Líquido de frenos", SKU: "LF-1", Unit: "lt", Category: "Uncategorized",
				StockQty: decimal.NewFromInt(4), AvgCost: decimal.NewFromInt(50),
				WeightedValue: decimal.NewFromInt(200), FIFOValue: decimal.NewFromInt(200),
				TotalPurchasedQty: decimal.Zero,
			},
		},
	}
	report.Totals = valuation.SumTotals(report.Rows)
	return appvaluation.NewExportDocument("2026-01-31", report)
}

func TestCSV_ColumnasYFilas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Write(&buf, sampleDocument()))

	want := "Part,SKU,Category,Unit,Total Qty,Avg Purchase Cost,Weighted Value,FIFO Value,Total Purchased Qty,Purchase History\n" +
		"\"Filtro, aceite\",FA-1,Filtros,und,3.00,106.6667,320.00,360.00,15.00,2026-01-02 @ 120.00; 2026-01-01 @ 100.00\n" +
		"Líquido de frenos,LF-1,Uncategorized,lt,4.00,50.0000,200.00,200.00,0.00,\n"
	assert.Equal(t, want, buf.String())
}

func TestCSV_SinFilas(t *testing.T) {
	var buf bytes.Buffer
	doc := appvaluation.NewExportDocument("2026-01-31", valuation.Report{Totals: valuation.SumTotals(nil)})
	require.NoError(t, NewCSVExporter().Write(&buf, doc))
	assert.Equal(t, "Part,SKU,Category,Unit,Total Qty,Avg Purchase Cost,Weighted Value,FIFO Value,Total Purchased Qty,Purchase History\n", buf.String())
}

func TestXLSX_HojasYValores(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().Write(&buf, sampleDocument()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{valuationSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(valuationSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, appvaluation.ExportColumns, rows[0])
	assert.Equal(t, "Filtro, aceite", rows[1][0])
	assert.Equal(t, "2026-01-02 @ 120.00; 2026-01-01 @ 100.00", rows[1][9])

	fifo, err := f.GetCellValue(valuationSheet, "H2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "360", fifo)

	total, err := f.GetCellValue(summarySheet, "B4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "560", total)
}

func TestXLSX_AnchosDeColumna(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().Write(&buf, sampleDocument()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	w, err := f.GetColWidth(valuationSheet, "J")
	require.NoError(t, err)
	assert.Equal(t, 60.0, w)
	w, err = f.GetColWidth(summarySheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 24.0, w)
}

func TestXLSX_ErroresDeFormatoSePropagan(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	err := setWidths(f, "Sheet1", []colWidth{{"A", 10}, {"B", 300}})
	require.Error(t, err)
	assert.ErrorIs(t, err, excelize.ErrColumnWidth)
	assert.Contains(t, err.Error(), "Sheet1!B")

	doc := sampleDocument()
	doc.Columns = nil
	var buf bytes.Buffer
	err = NewXLSXExporter().Write(&buf, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx: encabezado")
	assert.Zero(t, buf.Len())
}

func TestMetadatos(t *testing.T) {
	assert.Equal(t, "csv", NewCSVExporter().Format())
	assert.Equal(t, "xlsx", NewXLSXExporter().FileExtension())
	assert.Contains(t, NewXLSXExporter().ContentType(), "spreadsheetml")
}
