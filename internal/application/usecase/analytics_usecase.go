package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/pos-analytics/internal/application/dto"
	"github.com/jhoicas/pos-analytics/internal/application/ports"
	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/repository"
)

// Nombres de los reportes de clientes y ventas (también usados por la exportación).
const (
	ReportRFM       = "rfm"
	ReportLifecycle = "lifecycle"
	ReportRetention = "retention"
	ReportMargins   = "margins"
	ReportAffinity  = "affinity"
)

// AnalyticsUseCase orquesta los reportes de clientes y ventas:
//   - Segmentación RFM.
//   - Ciclo de vida de clientes.
//   - Retención mensual.
//   - Márgenes por producto y categoría.
//   - Afinidad de productos.
//
// Cada reporte toma su propia foto de datos del repositorio y la procesa en memoria.
type AnalyticsUseCase struct {
	repo     repository.SalesAnalyticsRepository
	cache    ports.ReportCache
	settings Settings
}

// NewAnalyticsUseCase construye el caso de uso. cache puede ser nil.
func NewAnalyticsUseCase(repo repository.SalesAnalyticsRepository, cache ports.ReportCache, settings Settings) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo, cache: cache, settings: settings.withDefaults()}
}

// GetRFMReport puntúa y segmenta a los clientes con sus ventas completadas del período.
func (uc *AnalyticsUseCase) GetRFMReport(ctx context.Context, companyID string, req dto.ReportRequest) (*dto.RFMReportDTO, error) {
	period, err := uc.settings.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	key := PeriodKey(ReportRFM, companyID, period, uc.settings.Now())
	return Cached(ctx, uc.cache, key, func() (*dto.RFMReportDTO, error) {
		customers, err := uc.repo.ListCustomersWithSales(ctx, companyID, &period)
		if err != nil {
			return nil, fmt.Errorf("rfm: clientes: %w", err)
		}
		now := uc.settings.Now()
		records := analytics.ClassifyRFM(analytics.BuildRFMInputs(customers, period, now))
		return &dto.RFMReportDTO{
			Period:      dto.NewPeriodDTO(period),
			GeneratedAt: now,
			Customers:   records,
			Segments:    analytics.SummarizeSegments(records),
		}, nil
	})
}

// GetCustomerLifecycle clasifica a cada cliente según su historial completo.
func (uc *AnalyticsUseCase) GetCustomerLifecycle(ctx context.Context, companyID string) (*dto.LifecycleReportDTO, error) {
	key := ReportKey(ReportLifecycle, companyID, uc.settings.Now().Format(dateLayout))
	return Cached(ctx, uc.cache, key, func() (*dto.LifecycleReportDTO, error) {
		customers, err := uc.repo.ListCustomersWithSales(ctx, companyID, nil)
		if err != nil {
			return nil, fmt.Errorf("lifecycle: clientes: %w", err)
		}
		now := uc.settings.Now()
		records := make([]analytics.CustomerLifecycle, 0, len(customers))
		for _, c := range customers {
			records = append(records, analytics.ClassifyLifecycle(c, now))
		}
		return &dto.LifecycleReportDTO{
			GeneratedAt: now,
			Customers:   records,
			Summary:     analytics.SummarizeLifecycle(records),
		}, nil
	})
}

// GetRetentionReport calcula la retención de los últimos meses calendario que
// terminan en el mes de end_date. start_date se ignora.
func (uc *AnalyticsUseCase) GetRetentionReport(ctx context.Context, companyID string, req dto.ReportRequest) (*dto.RetentionReportDTO, error) {
	end, err := uc.settings.ParseEndDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	months := uc.settings.RetentionMonths
	key := ReportKey(ReportRetention, companyID, end.Format(dateLayout), strconv.Itoa(months))
	return Cached(ctx, uc.cache, key, func() (*dto.RetentionReportDTO, error) {
		sales, err := uc.repo.ListCompletedSales(ctx, companyID, analytics.RetentionWindow(end, months))
		if err != nil {
			return nil, fmt.Errorf("retention: ventas: %w", err)
		}
		return &dto.RetentionReportDTO{
			Months:  months,
			Periods: analytics.MonthlyRetention(sales, end, months),
		}, nil
	})
}

// GetProfitMargins agrega ingresos, costos y márgenes por producto y categoría.
func (uc *AnalyticsUseCase) GetProfitMargins(ctx context.Context, companyID string, req dto.ReportRequest) (*dto.ProfitReportDTO, error) {
	period, err := uc.settings.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	key := PeriodKey(ReportMargins, companyID, period, uc.settings.Now())
	return Cached(ctx, uc.cache, key, func() (*dto.ProfitReportDTO, error) {
		sales, err := uc.repo.ListCompletedSales(ctx, companyID, period)
		if err != nil {
			return nil, fmt.Errorf("margins: ventas: %w", err)
		}
		return &dto.ProfitReportDTO{
			Period:       dto.NewPeriodDTO(period),
			ProfitReport: analytics.AggregateProfit(sales),
		}, nil
	})
}

// GetProductAffinity devuelve los pares de productos que más se compran juntos.
func (uc *AnalyticsUseCase) GetProductAffinity(ctx context.Context, companyID string, req dto.ReportRequest) (*dto.AffinityReportDTO, error) {
	period, err := uc.settings.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	topN := uc.settings.TopN(req.TopN)
	key := PeriodKey(ReportAffinity, companyID, period, uc.settings.Now(), strconv.Itoa(topN))
	return Cached(ctx, uc.cache, key, func() (*dto.AffinityReportDTO, error) {
		sales, err := uc.repo.ListCompletedSales(ctx, companyID, period)
		if err != nil {
			return nil, fmt.Errorf("affinity: ventas: %w", err)
		}
		return &dto.AffinityReportDTO{
			Period: dto.NewPeriodDTO(period),
			TopN:   topN,
			Pairs:  analytics.ComputeAffinity(sales, topN),
		}, nil
	})
}
