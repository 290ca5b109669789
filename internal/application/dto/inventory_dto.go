package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
)

// ForecastRequest parámetros para GET /api/inventory/*.
type ForecastRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Limit     int    `query:"limit"` // solo pronóstico de agotamiento (default 10, max 200)
}

// DepletionForecastDTO productos que se agotarán primero.
// Los productos sin consumo nunca se vacían y no aparecen.
type DepletionForecastDTO struct {
	Period   PeriodDTO                   `json:"period"`
	Products []analytics.StockPrediction `json:"products"`
}

// StockAlertsDTO alertas tempranas (solo crítico y bajo) con reposición sugerida.
type StockAlertsDTO struct {
	Period   PeriodDTO              `json:"period"`
	Critical int                    `json:"critical"`
	Low      int                    `json:"low"`
	Alerts   []analytics.StockAlert `json:"alerts"`
}

// ExcessInventoryDTO productos con stock por encima del óptimo.
type ExcessInventoryDTO struct {
	Period          PeriodDTO                   `json:"period"`
	TotalExcessCost decimal.Decimal             `json:"total_excess_cost"`
	Products        []analytics.ExcessInventory `json:"products"`
}
