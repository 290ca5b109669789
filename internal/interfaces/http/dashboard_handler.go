package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/pos-analytics/internal/application/analytics"
	"github.com/jhoicas/pos-analytics/internal/application/dto"
	"github.com/jhoicas/pos-analytics/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve los KPIs del período: ventas, margen, clientes e inventario.
// GET /api/dashboard/summary?start_date=&end_date=
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	summary, err := h.uc.GetSummary(c.Context(), companyID, req)
	if err != nil {
		return reportError(c, h.log, appanalytics.ReportDashboard, err)
	}
	return c.JSON(summary)
}
