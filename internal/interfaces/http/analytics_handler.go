package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-analytics/internal/application/dto"
	"github.com/jhoicas/pos-analytics/internal/application/usecase"
	"github.com/jhoicas/pos-analytics/pkg/logger"
)

// AnalyticsHandler maneja los endpoints de analítica de clientes y rentabilidad.
type AnalyticsHandler struct {
	uc  *usecase.AnalyticsUseCase
	log *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

// GetRFM godoc
// @Summary      Segmentación RFM de clientes
// @Description  Puntúa recencia, frecuencia y valor monetario por quintiles y asigna un segmento
//               de marketing. Los clientes sin compras en el período van al final como "Sin Actividad".
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: end_date - 30 días."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.RFMReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/rfm [get]
func (h *AnalyticsHandler) GetRFM(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	report, err := h.uc.GetRFMReport(c.Context(), companyID, req)
	if err != nil {
		return reportError(c, h.log, usecase.ReportRFM, err)
	}
	return c.JSON(report)
}

// GetLifecycle godoc
// @Summary      Ciclo de vida de clientes
// @Description  Estado de cada cliente (Activo, En Riesgo, Perdido, Sin Compras) según su historial completo.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LifecycleReportDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/customers/lifecycle [get]
func (h *AnalyticsHandler) GetLifecycle(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}

	report, err := h.uc.GetCustomerLifecycle(c.Context(), companyID)
	if err != nil {
		return reportError(c, h.log, usecase.ReportLifecycle, err)
	}
	return c.JSON(report)
}

// GetRetention godoc
// @Summary      Retención mensual
// @Description  Clientes nuevos, recurrentes y perdidos de los últimos meses hasta end_date, en orden cronológico.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        end_date  query  string  false  "Mes de referencia (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.RetentionReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/retention [get]
func (h *AnalyticsHandler) GetRetention(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	report, err := h.uc.GetRetentionReport(c.Context(), companyID, req)
	if err != nil {
		return reportError(c, h.log, usecase.ReportRetention, err)
	}
	return c.JSON(report)
}

// GetMargins godoc
// @Summary      Márgenes por producto y categoría
// @Description  Ingreso, costo y margen de cada producto vendido, agregados por categoría y en total.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: end_date - 30 días."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.ProfitReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/margins [get]
func (h *AnalyticsHandler) GetMargins(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	report, err := h.uc.GetProfitMargins(c.Context(), companyID, req)
	if err != nil {
		return reportError(c, h.log, usecase.ReportMargins, err)
	}
	return c.JSON(report)
}

// GetAffinity godoc
// @Summary      Afinidad de productos
// @Description  Pares de productos comprados juntos con su frecuencia y correlación.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: end_date - 30 días."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        top_n       query  int     false  "Máx. pares (default 10, max 200)."
// @Success      200  {object}  dto.AffinityReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/affinity [get]
func (h *AnalyticsHandler) GetAffinity(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	report, err := h.uc.GetProductAffinity(c.Context(), companyID, req)
	if err != nil {
		return reportError(c, h.log, usecase.ReportAffinity, err)
	}
	return c.JSON(report)
}
