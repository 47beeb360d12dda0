// Package export implementa los formatos tabulares de exportación del reporte de valoración.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
)

var _ appvaluation.Exporter = (*CSVExporter)(nil)

// CSVExporter escribe el encabezado fijo y una línea por fila, sin fila de totales
// (las planillas que consumen el archivo suman por su cuenta).
type CSVExporter struct{}

// NewCSVExporter construye el exportador CSV.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (*CSVExporter) Format() string        { return "csv" }
func (*CSVExporter) ContentType() string   { return "text/csv; charset=utf-8" }
func (*CSVExporter) FileExtension() string { return "csv" }

// Write serializa doc en w.
func (*CSVExporter) Write(w io.Writer, doc appvaluation.ExportDocument) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(doc.Columns); err != nil {
		return fmt.Errorf("csv: encabezado: %w", err)
	}
	for i, r := range doc.Records {
		if err := cw.Write(r.Strings()); err != nil {
			return fmt.Errorf("csv: fila %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
