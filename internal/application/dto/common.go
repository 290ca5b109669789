package dto

import (
	"time"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"` // longitud de la ventana usada para tasas de consumo
}

// NewPeriodDTO formatea un período del dominio.
func NewPeriodDTO(p analytics.Period) PeriodDTO {
	return PeriodDTO{
		StartDate: p.Start.Format(time.DateOnly),
		EndDate:   p.End.Format(time.DateOnly),
		Days:      p.Days(),
	}
}
