package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tu-usuario/materials-api/internal/application/materials"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC     *materials.UseCase
	LedgerUC       *materials.LedgerUseCase
	StatsUC        *materials.StatsUseCase
	ReportUC       *materials.ReportUseCase
	JWTSecret      string
	MetricsEnabled bool
}

// Router registra las rutas de la API.
// Las rutas estáticas (/stats, /export, /use, ...) van antes que /:id para
// que Fiber no las capture como parámetro.
func Router(app *fiber.App, deps RouterDeps) {
	// Endpoints públicos de operación
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	mats := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	statsHandler := NewStatsHandler(deps.StatsUC)
	reportHandler := NewReportHandler(deps.ReportUC)

	mats.Post("/", materialHandler.Create)
	mats.Get("/", materialHandler.List)
	mats.Get("/stats", statsHandler.Overview)
	mats.Get("/export", reportHandler.ExportXLSX)
	mats.Get("/report", reportHandler.LowStockPDF)
	mats.Post("/use", ledgerHandler.Use)
	mats.Post("/restock", ledgerHandler.Restock)
	mats.Post("/bulk", materialHandler.BulkAction)
	mats.Get("/:id", materialHandler.GetByID)
	mats.Get("/:id/history", materialHandler.History)
	mats.Put("/:id", materialHandler.Update)
	mats.Delete("/:id", materialHandler.Delete)
}
