package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/garage-valuation/docs"
	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
	"github.com/jhoicas/garage-valuation/internal/domain/valuation"
	"github.com/jhoicas/garage-valuation/internal/infrastructure/export"
	"github.com/jhoicas/garage-valuation/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/garage-valuation/internal/infrastructure/pdf"
	"github.com/jhoicas/garage-valuation/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/garage-valuation/internal/interfaces/http"
	"github.com/jhoicas/garage-valuation/pkg/config"
	"github.com/jhoicas/garage-valuation/pkg/logger"
)

// @title                       Garage Valuation API
// @version                     1.0
// @description                 Valoración de inventario de repuestos por taller (costo promedio y FIFO).
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	snapshots := postgres.NewSnapshotRunner(pool, cfg.Report.StatementTimeout)
	prom := metrics.NewPrometheus(true)
	gate := appvaluation.NewExportGate(cfg.Report.ExportRoles)

	valuationUC := appvaluation.NewInventoryValuationUseCase(
		snapshots,
		gate,
		[]appvaluation.Exporter{
			export.NewCSVExporter(),
			export.NewXLSXExporter(),
			infrapdf.NewValuationPDFExporter(cfg.App.Name),
		},
		log,
		appvaluation.Options{
			Location:    cfg.Report.Location(),
			Policy:      gapFillPolicy(cfg.Report.GapFillPolicy, log),
			HistorySize: cfg.Report.HistorySize,
			Metrics:     prom,
		},
	)
	log.Info().
		Str("time_zone", cfg.Report.Location().String()).
		Strs("export_roles", cfg.Report.ExportRoles).
		Strs("formats", valuationUC.Formats()).
		Msg("reporte de valoración configurado")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Garage Valuation API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Valuation:  valuationUC,
		ExportGate: gate,
		Metrics:    prom.Handler(),
		Log:        log,
		JWTSecret:  cfg.JWT.Secret,
		AppName:    cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// gapFillPolicy resuelve la política configurada; un nombre desconocido no impide arrancar.
func gapFillPolicy(name string, log *logger.Logger) valuation.GapFillPolicy {
	policy, err := valuation.GapFillPolicyByName(name)
	if err != nil {
		policy = valuation.DefaultGapFillPolicy()
		log.Warn().Err(err).
			Str("configured", name).
			Strs("available", valuation.GapFillPolicyNames()).
			Str("used", policy.Name()).
			Msg("política de relleno desconocida, se usa la de defecto")
	}
	return policy
}
