package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-analytics/internal/application/dto"
	"github.com/jhoicas/pos-analytics/internal/domain"
	"github.com/jhoicas/pos-analytics/pkg/logger"
)

// messageReportFailed mensaje genérico para fallos de acceso a datos.
const messageReportFailed = "no se pudo cargar el reporte"

// requireCompany responde 401 si el token no dejó company_id en el contexto.
func requireCompany(c *fiber.Ctx) (string, error) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return "", c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}
	return companyID, nil
}

// invalidParams respuesta para query strings que Fiber no pudo decodificar.
func invalidParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
	})
}

// reportError traduce el error de un caso de uso a la respuesta HTTP.
// Los errores de validación son del cliente (400, 404); el resto se registra y responde 500
// sin detalles internos.
func reportError(c *fiber.Ctx, log *logger.Logger, report string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FORMAT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownReport):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}

	log.Error().
		Err(err).
		Str("report", report).
		Str("company_id", GetCompanyID(c)).
		Str("request_id", GetRequestID(c)).
		Msg("reporte fallido")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: messageReportFailed,
	})
}
