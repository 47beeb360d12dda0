package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appvaluation "github.com/jhoicas/garage-valuation/internal/application/valuation"
	"github.com/jhoicas/garage-valuation/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Valuation  *appvaluation.InventoryValuationUseCase
	ExportGate *appvaluation.ExportGate
	Metrics    nethttp.Handler // opcional: expone /metrics si no es nil
	Log        *logger.Logger
	JWTSecret  string
	AppName    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID(), RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	reports := api.Group("/reports")
	valuationHandler := NewValuationHandler(deps.Valuation, deps.Log)
	reports.Get("/inventory-valuation", valuationHandler.GetReport)
	reports.Get("/inventory-valuation/export", RequireExport(deps.ExportGate), valuationHandler.Export)
}
