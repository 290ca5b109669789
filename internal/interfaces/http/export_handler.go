package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-analytics/internal/application/dto"
	appexport "github.com/jhoicas/pos-analytics/internal/application/export"
	"github.com/jhoicas/pos-analytics/pkg/logger"
)

// ExportHandler descarga reportes como archivo.
type ExportHandler struct {
	uc  *appexport.ExportUseCase
	log *logger.Logger
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *appexport.ExportUseCase, log *logger.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, log: log}
}

// ListReports godoc
// @Summary      Reportes exportables
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/reports [get]
func (h *ExportHandler) ListReports(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"reports": appexport.Reports()})
}

// Export godoc
// @Summary      Exportar reporte
// @Description  Genera el reporte indicado en CSV, XLSX o PDF. Las fechas y cifras se formatean según la columna.
// @Tags         reports
// @Security     Bearer
// @Produce      octet-stream
// @Param        report      path   string  true   "rfm | lifecycle | retention | margins | categories | affinity | forecast | alerts | excess"
// @Param        format      query  string  false  "csv | xlsx | pdf (default csv)"
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)."
// @Param        top_n       query  int     false  "Solo afinidad."
// @Param        limit       query  int     false  "Solo pronóstico."
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/{report}/export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	companyID, err := requireCompany(c)
	if companyID == "" {
		return err
	}
	var req dto.ExportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	report := c.Params("report")

	file, err := h.uc.Export(c.Context(), companyID, report, req)
	if err != nil {
		return reportError(c, h.log, report, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Content)
}
