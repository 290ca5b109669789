// Package inventory contiene los casos de uso de pronóstico de inventario:
// agotamiento, alertas tempranas de stock y excedentes.
package inventory

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/pos-analytics/internal/application/dto"
	"github.com/jhoicas/pos-analytics/internal/application/ports"
	"github.com/jhoicas/pos-analytics/internal/application/usecase"
	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/repository"
)

// Nombres de los reportes de inventario.
const (
	ReportForecast = "forecast"
	ReportAlerts   = "alerts"
	ReportExcess   = "excess"
)

// ForecastUseCase extrapola el consumo de la ventana para anticipar quiebres y excedentes.
type ForecastUseCase struct {
	repo     repository.SalesAnalyticsRepository
	cache    ports.ReportCache
	settings usecase.Settings
}

// NewForecastUseCase construye el caso de uso. cache puede ser nil.
func NewForecastUseCase(repo repository.SalesAnalyticsRepository, cache ports.ReportCache, settings usecase.Settings) *ForecastUseCase {
	return &ForecastUseCase{repo: repo, cache: cache, settings: settings}
}

// GetDepletionForecast devuelve los productos que se agotarán primero.
func (uc *ForecastUseCase) GetDepletionForecast(ctx context.Context, companyID string, req dto.ForecastRequest) (*dto.DepletionForecastDTO, error) {
	period, err := uc.settings.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	limit := uc.settings.TopN(req.Limit)
	key := usecase.PeriodKey(ReportForecast, companyID, period, uc.settings.Now(), strconv.Itoa(limit))
	return usecase.Cached(ctx, uc.cache, key, func() (*dto.DepletionForecastDTO, error) {
		items, err := uc.consumption(ctx, companyID, period)
		if err != nil {
			return nil, fmt.Errorf("forecast: %w", err)
		}
		return &dto.DepletionForecastDTO{
			Period:   dto.NewPeriodDTO(period),
			Products: analytics.RankByDepletion(items, period.Days(), uc.settings.Now(), limit),
		}, nil
	})
}

// GetStockAlerts devuelve las alertas crítico y bajo con la reposición sugerida.
func (uc *ForecastUseCase) GetStockAlerts(ctx context.Context, companyID string, req dto.ForecastRequest) (*dto.StockAlertsDTO, error) {
	period, err := uc.settings.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	key := usecase.PeriodKey(ReportAlerts, companyID, period, uc.settings.Now())
	return usecase.Cached(ctx, uc.cache, key, func() (*dto.StockAlertsDTO, error) {
		items, err := uc.consumption(ctx, companyID, period)
		if err != nil {
			return nil, fmt.Errorf("alerts: %w", err)
		}
		alerts := analytics.BuildStockAlerts(items, period.Days())
		out := &dto.StockAlertsDTO{Period: dto.NewPeriodDTO(period), Alerts: alerts}
		for _, a := range alerts {
			switch a.AlertLevel {
			case analytics.AlertCritical:
				out.Critical++
			case analytics.AlertLow:
				out.Low++
			}
		}
		return out, nil
	})
}

// GetExcessInventory devuelve los productos con excedente, del más costoso al menos.
func (uc *ForecastUseCase) GetExcessInventory(ctx context.Context, companyID string, req dto.ForecastRequest) (*dto.ExcessInventoryDTO, error) {
	period, err := uc.settings.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	key := usecase.PeriodKey(ReportExcess, companyID, period, uc.settings.Now())
	return usecase.Cached(ctx, uc.cache, key, func() (*dto.ExcessInventoryDTO, error) {
		items, err := uc.consumption(ctx, companyID, period)
		if err != nil {
			return nil, fmt.Errorf("excess: %w", err)
		}
		products := analytics.DetectExcessInventory(items, period.Days(), uc.settings.Now())
		return &dto.ExcessInventoryDTO{
			Period:          dto.NewPeriodDTO(period),
			TotalExcessCost: analytics.TotalExcessCost(products),
			Products:        products,
		}, nil
	})
}

// consumption consulta catálogo y ventas en paralelo y los cruza.
func (uc *ForecastUseCase) consumption(ctx context.Context, companyID string, period analytics.Period) ([]analytics.ProductConsumption, error) {
	products, sales, err := fetchProductsAndSales(ctx, uc.repo, companyID, period)
	if err != nil {
		return nil, err
	}
	return analytics.BuildConsumption(products, sales, period), nil
}
