// Package analytics contiene el caso de uso del Dashboard de analítica:
// un resumen de KPIs de ventas, clientes e inventario del período.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pos-analytics/internal/application/dto"
	"github.com/jhoicas/pos-analytics/internal/application/ports"
	"github.com/jhoicas/pos-analytics/internal/application/usecase"
	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/jhoicas/pos-analytics/internal/domain/repository"
)

// ReportDashboard nombre del reporte en la caché.
const ReportDashboard = "dashboard"

// DashboardUseCase genera el resumen del período para la empresa indicada.
//
// Fuente de datos: SalesAnalyticsRepository (consultas read-only).
// Reutiliza los mismos algoritmos que los reportes individuales.
type DashboardUseCase struct {
	repo     repository.SalesAnalyticsRepository
	cache    ports.ReportCache
	settings usecase.Settings
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(repo repository.SalesAnalyticsRepository, cache ports.ReportCache, settings usecase.Settings) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, cache: cache, settings: settings}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. ListCustomersWithSales(período) → clientes activos y segmentos RFM
//  2. ListProducts                    → alertas y excedentes
//  3. ListCompletedSales(período)     → ingresos, márgenes y consumo
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string, req dto.ReportRequest) (*dto.DashboardSummaryDTO, error) {
	period, err := uc.settings.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	key := usecase.PeriodKey(ReportDashboard, companyID, period, uc.settings.Now())
	return usecase.Cached(ctx, uc.cache, key, func() (*dto.DashboardSummaryDTO, error) {
		return uc.summarize(ctx, companyID, period)
	})
}

func (uc *DashboardUseCase) summarize(ctx context.Context, companyID string, period analytics.Period) (*dto.DashboardSummaryDTO, error) {
	var (
		customers []entity.Customer
		products  []entity.Product
		sales     []entity.Sale
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if customers, err = uc.repo.ListCustomersWithSales(gctx, companyID, &period); err != nil {
			return fmt.Errorf("dashboard: clientes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if products, err = uc.repo.ListProducts(gctx, companyID); err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if sales, err = uc.repo.ListCompletedSales(gctx, companyID, period); err != nil {
			return fmt.Errorf("dashboard: ventas: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := uc.settings.Now()
	out := &dto.DashboardSummaryDTO{
		Period:    dto.NewPeriodDTO(period),
		DateLabel: periodLabel(period),
	}

	// ── Ventas ─────────────────────────────────────────────────────────────────
	profit := analytics.AggregateProfit(sales)
	out.Revenue = profit.TotalRevenue.Round(2)
	out.Cost = profit.TotalCost.Round(2)
	out.Margin = profit.TotalMargin.Round(2)
	out.MarginPercent = profit.TotalMarginPercent
	if len(profit.Categories) > 0 {
		out.TopCategory = profit.Categories[0].Category
	}
	for _, s := range sales {
		if s.IsCompleted() && period.Contains(s.Date) {
			out.SalesCount++
		}
	}

	// ── Clientes ───────────────────────────────────────────────────────────────
	for _, r := range analytics.ClassifyRFM(analytics.BuildRFMInputs(customers, period, now)) {
		if r.Segment == analytics.SegmentNoActivity {
			continue
		}
		out.ActiveCustomers++
		switch r.Segment {
		case analytics.SegmentChampions:
			out.Champions++
		case analytics.SegmentAtRisk:
			out.AtRisk++
		}
	}

	// ── Inventario ─────────────────────────────────────────────────────────────
	items := analytics.BuildConsumption(products, sales, period)
	for _, a := range analytics.BuildStockAlerts(items, period.Days()) {
		if a.AlertLevel == analytics.AlertCritical {
			out.CriticalAlerts++
		} else {
			out.LowAlerts++
		}
	}
	out.ExcessStockCost = analytics.TotalExcessCost(analytics.DetectExcessInventory(items, period.Days(), now))

	return out, nil
}

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// periodLabel nombra el mes si el período cubre un mes calendario completo;
// si no, el rango de fechas, ej: "13 Feb 2026 - 15 Mar 2026".
func periodLabel(p analytics.Period) string {
	sameMonth := p.Start.Year() == p.End.Year() && p.Start.Month() == p.End.Month()
	if sameMonth && p.Start.Day() == 1 && p.End.AddDate(0, 0, 1).Day() == 1 {
		return monthLabel(p.End)
	}
	return fmt.Sprintf("%s - %s", shortDate(p.Start), shortDate(p.End))
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
}

func shortDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1][:3], t.Year())
}
