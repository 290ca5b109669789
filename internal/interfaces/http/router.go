package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/pos-analytics/internal/application/analytics"
	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
	"github.com/jhoicas/pos-analytics/internal/application/inventory"
	"github.com/jhoicas/pos-analytics/internal/application/usecase"
	"github.com/jhoicas/pos-analytics/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AnalyticsUC *usecase.AnalyticsUseCase
	ForecastUC  *inventory.ForecastUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ExportUC    *appexport.ExportUseCase
	Logger      *logger.Logger
	JWTSecret   string
	ExportRoles []string // vacío = cualquier rol autenticado
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.Logger)
	analyticsGroup := api.Group("/analytics")
	analyticsGroup.Get("/rfm", analyticsHandler.GetRFM)
	analyticsGroup.Get("/customers/lifecycle", analyticsHandler.GetLifecycle)
	analyticsGroup.Get("/retention", analyticsHandler.GetRetention)
	analyticsGroup.Get("/margins", analyticsHandler.GetMargins)
	analyticsGroup.Get("/affinity", analyticsHandler.GetAffinity)

	inventoryHandler := NewInventoryHandler(deps.ForecastUC, deps.Logger)
	invGroup := api.Group("/inventory")
	invGroup.Get("/forecast", inventoryHandler.GetForecast)
	invGroup.Get("/alerts", inventoryHandler.GetAlerts)
	invGroup.Get("/excess", inventoryHandler.GetExcess)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Logger)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	exportHandler := NewExportHandler(deps.ExportUC, deps.Logger)
	reports := api.Group("/reports")
	reports.Get("/", exportHandler.ListReports)
	reports.Get("/:report/export", RequireRole(deps.ExportRoles...), exportHandler.Export)
}
