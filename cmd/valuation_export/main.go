// valuation_export genera el reporte de valoración de inventario como archivo, sin pasar
// por la API HTTP. Lee de PostgreSQL (configuración por env, igual que la API) o, con
// -fixture, de un JSON con datos de ejemplo.
//
// Uso:
//
//	go run ./cmd/valuation_export -tenant <uuid> [-garage <uuid>] [-date YYYY-MM-DD]
//	    [-search texto] [-format csv|xlsx|pdf] [-out archivo|-] [-fixture datos.json]
//
// Sin -out el archivo se escribe en el directorio actual con el nombre sugerido
// (inventory-valuation-<fecha>.<ext>). "-out -" escribe a stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
	"github.com/jhoicas/garage-valuation/internal/domain/valuation"
	"github.com/jhoicas/garage-valuation/internal/infrastructure/export"
	"github.com/jhoicas/garage-valuation/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/garage-valuation/internal/infrastructure/pdf"
	"github.com/jhoicas/garage-valuation/internal/infrastructure/postgres"
	"github.com/jhoicas/garage-valuation/pkg/config"
	"github.com/jhoicas/garage-valuation/pkg/logger"
)

// serviceRole rol con el que corre el CLI; exporta por el claim, no por la lista de roles.
const serviceRole = "service"

type options struct {
	tenant  string
	garage  string
	date    string
	search  string
	format  string
	out     string
	fixture string
}

func main() {
	var o options
	flag.StringVar(&o.tenant, "tenant", "", "tenant a valorar (obligatorio)")
	flag.StringVar(&o.garage, "garage", "", "limitar a un taller")
	flag.StringVar(&o.date, "date", "", "fecha de corte YYYY-MM-DD (vacío = hoy)")
	flag.StringVar(&o.search, "search", "", "filtro por nombre o SKU")
	flag.StringVar(&o.format, "format", "csv", "csv, xlsx o pdf")
	flag.StringVar(&o.out, "out", "", "archivo de salida; '-' = stdout")
	flag.StringVar(&o.fixture, "fixture", "", "JSON con datos de ejemplo en lugar de PostgreSQL")
	flag.Parse()

	if o.tenant == "" {
		fmt.Fprintln(os.Stderr, "falta -tenant")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		fmt.Fprintf(os.Stderr, "valuation_export: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	// Los logs van a stderr para no mezclarse con "-out -".
	log := logger.NewWithWriter(os.Stderr, cfg.App.LogLevel)

	var runner appvaluation.SnapshotRunner
	if o.fixture != "" {
		f, err := os.Open(o.fixture)
		if err != nil {
			return fmt.Errorf("abrir fixture: %w", err)
		}
		store, err := memory.LoadFixture(f)
		f.Close()
		if err != nil {
			return err
		}
		runner = store
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		runner = postgres.NewSnapshotRunner(pool, cfg.Report.StatementTimeout)
	}

	policy, err := valuation.GapFillPolicyByName(cfg.Report.GapFillPolicy)
	if err != nil {
		log.Warn().Err(err).Str("used", valuation.PolicyAverageCost).Msg("política de relleno desconocida")
		policy = valuation.DefaultGapFillPolicy()
	}

	uc := appvaluation.NewInventoryValuationUseCase(
		runner,
		appvaluation.NewExportGate(nil),
		[]appvaluation.Exporter{
			export.NewCSVExporter(),
			export.NewXLSXExporter(),
			infrapdf.NewValuationPDFExporter(cfg.App.Name),
		},
		log,
		appvaluation.Options{
			Location:    cfg.Report.Location(),
			Policy:      policy,
			HistorySize: cfg.Report.HistorySize,
		},
	)

	principal := appvaluation.Principal{UserID: "cli", TenantID: o.tenant, Role: serviceRole, CanExport: true}
	file, err := uc.Export(ctx, principal, appvaluation.ReportRequest{
		GarageID: o.garage,
		AsOnDate: o.date,
		Search:   o.search,
	}, o.format)
	if err != nil {
		return err
	}

	return writeOutput(o.out, file)
}

func writeOutput(out string, file *appvaluation.ExportFile) error {
	if out == "-" {
		if _, err := os.Stdout.Write(file.Body); err != nil {
			return fmt.Errorf("escribir salida: %w", err)
		}
		return nil
	}
	if out == "" {
		out = file.Filename
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("crear %s: %w", out, err)
	}
	if err := writeAndClose(f, out, file.Body); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s (%d bytes)\n", out, len(file.Body))
	return nil
}

// writeAndClose escribe body y cierra w; un error al cerrar también falla la exportación.
func writeAndClose(w io.WriteCloser, name string, body []byte) error {
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("escribir %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("cerrar %s: %w", name, err)
	}
	return nil
}
