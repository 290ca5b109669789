package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-analytics/internal/application/dto"
	"github.com/jhoicas/pos-analytics/internal/application/inventory"
	"github.com/jhoicas/pos-analytics/pkg/logger"
)

// InventoryHandler maneja los pronósticos de inventario.
type InventoryHandler struct {
	uc  *inventory.ForecastUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ForecastUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// GetForecast godoc
// @Summary      Pronóstico de agotamiento
// @Description  Productos que se quedarán sin stock primero según el consumo diario del período.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: end_date - 30 días."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        limit       query  int     false  "Máx. productos (default 10, max 200)."
// @Success      200  {object}  dto.DepletionForecastDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/forecast [get]
func (h *InventoryHandler) GetForecast(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var req dto.ForecastRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	report, err := h.uc.GetDepletionForecast(c.Context(), companyID, req)
	if err != nil {
		return reportError(c, h.log, inventory.ReportForecast, err)
	}
	return c.JSON(report)
}

// GetAlerts godoc
// @Summary      Alertas tempranas de stock
// @Description  Productos en nivel crítico o bajo con la cantidad de reposición sugerida.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)."
// @Success      200  {object}  dto.StockAlertsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) GetAlerts(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var req dto.ForecastRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	report, err := h.uc.GetStockAlerts(c.Context(), companyID, req)
	if err != nil {
		return reportError(c, h.log, inventory.ReportAlerts, err)
	}
	return c.JSON(report)
}

// GetExcess godoc
// @Summary      Inventario excedente
// @Description  Stock por encima del óptimo (mínimo + 30 días de consumo) ordenado por costo inmovilizado.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)."
// @Success      200  {object}  dto.ExcessInventoryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/excess [get]
func (h *InventoryHandler) GetExcess(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var req dto.ForecastRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	report, err := h.uc.GetExcessInventory(c.Context(), companyID, req)
	if err != nil {
		return reportError(c, h.log, inventory.ReportExcess, err)
	}
	return c.JSON(report)
}
