package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/pos-analytics/internal/application/dto"
	"github.com/jhoicas/pos-analytics/internal/application/inventory"
	"github.com/jhoicas/pos-analytics/internal/application/usecase"
	"github.com/jhoicas/pos-analytics/internal/domain"
)

// ReportCategories márgenes agregados por categoría (el reporte margins exporta productos).
const ReportCategories = "categories"

// DefaultFormat formato usado cuando no se indica ninguno.
const DefaultFormat = "csv"

// Writer serializa un Dataset en un formato de archivo.
type Writer interface {
	Format() string // csv, xlsx, pdf
	ContentType() string
	Write(w io.Writer, ds Dataset) error
}

// ExportUseCase calcula un reporte con los casos de uso de analítica e
// inventario y lo serializa con el writer del formato pedido.
type ExportUseCase struct {
	analytics *usecase.AnalyticsUseCase
	forecast  *inventory.ForecastUseCase
	writers   map[string]Writer
	settings  usecase.Settings
}

// NewExportUseCase construye el caso de uso con los writers disponibles.
func NewExportUseCase(
	analyticsUC *usecase.AnalyticsUseCase,
	forecastUC *inventory.ForecastUseCase,
	settings usecase.Settings,
	writers ...Writer,
) *ExportUseCase {
	byFormat := make(map[string]Writer, len(writers))
	for _, w := range writers {
		byFormat[w.Format()] = w
	}
	return &ExportUseCase{analytics: analyticsUC, forecast: forecastUC, writers: byFormat, settings: settings}
}

// Reports lista los reportes exportables.
func Reports() []string {
	return []string{
		usecase.ReportRFM, usecase.ReportLifecycle, usecase.ReportRetention,
		usecase.ReportMargins, ReportCategories, usecase.ReportAffinity,
		inventory.ReportForecast, inventory.ReportAlerts, inventory.ReportExcess,
	}
}

// Export genera el archivo del reporte indicado.
func (uc *ExportUseCase) Export(ctx context.Context, companyID, report string, req dto.ExportRequest) (*dto.ExportFile, error) {
	format := strings.ToLower(req.Format)
	if format == "" {
		format = DefaultFormat
	}
	w, ok := uc.writers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, req.Format)
	}

	ds, err := uc.Dataset(ctx, companyID, report, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, ds); err != nil {
		return nil, fmt.Errorf("export: %s %s: %w", report, format, err)
	}
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", report, uc.settings.Now().Format("20060102"), format),
		ContentType: w.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}

// Report devuelve la respuesta completa del reporte (la misma que expone la API).
func (uc *ExportUseCase) Report(ctx context.Context, companyID, report string, req dto.ExportRequest) (any, error) {
	rr := dto.ReportRequest{StartDate: req.StartDate, EndDate: req.EndDate, TopN: req.TopN}
	fr := dto.ForecastRequest{StartDate: req.StartDate, EndDate: req.EndDate, Limit: req.Limit}

	switch report {
	case usecase.ReportRFM:
		return uc.analytics.GetRFMReport(ctx, companyID, rr)
	case usecase.ReportLifecycle:
		return uc.analytics.GetCustomerLifecycle(ctx, companyID)
	case usecase.ReportRetention:
		return uc.analytics.GetRetentionReport(ctx, companyID, rr)
	case usecase.ReportMargins, ReportCategories:
		return uc.analytics.GetProfitMargins(ctx, companyID, rr)
	case usecase.ReportAffinity:
		return uc.analytics.GetProductAffinity(ctx, companyID, rr)
	case inventory.ReportForecast:
		return uc.forecast.GetDepletionForecast(ctx, companyID, fr)
	case inventory.ReportAlerts:
		return uc.forecast.GetStockAlerts(ctx, companyID, fr)
	case inventory.ReportExcess:
		return uc.forecast.GetExcessInventory(ctx, companyID, fr)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownReport, report)
	}
}

// Dataset calcula el reporte y lo aplana con las columnas marcadas para formato.
func (uc *ExportUseCase) Dataset(ctx context.Context, companyID, report string, req dto.ExportRequest) (Dataset, error) {
	res, err := uc.Report(ctx, companyID, report, req)
	if err != nil {
		return Dataset{}, err
	}

	switch r := res.(type) {
	case *dto.RFMReportDTO:
		return FromRecords("Segmentación RFM", r.Customers, Kinds{
			"recency_days": KindNumber, "frequency": KindNumber, "monetary": KindMoney,
			"r_score": KindNumber, "f_score": KindNumber, "m_score": KindNumber, "rfm_score": KindNumber,
		})
	case *dto.LifecycleReportDTO:
		return FromRecords("Ciclo de vida de clientes", r.Customers, Kinds{
			"first_purchase": KindDate, "last_purchase": KindDate,
			"days_as_customer": KindNumber, "days_since_last_purchase": KindNumber,
			"total_purchases": KindNumber, "total_value": KindMoney, "average_value": KindMoney,
			"purchases_per_month": KindNumber,
		})
	case *dto.RetentionReportDTO:
		return FromRecords("Retención de clientes", r.Periods, Kinds{
			"period_start": KindDate, "period_end": KindDate,
			"total_customers": KindNumber, "new_customers": KindNumber,
			"returning_customers": KindNumber, "lost_customers": KindNumber,
			"retention_rate": KindPercent,
		})
	case *dto.ProfitReportDTO:
		kinds := Kinds{
			"products": KindNumber, "units_sold": KindNumber,
			"revenue": KindMoney, "cost": KindMoney, "margin": KindMoney, "margin_percent": KindPercent,
		}
		if report == ReportCategories {
			return FromRecords("Márgenes por categoría", r.Categories, kinds)
		}
		return FromRecords("Márgenes por producto", r.Products, kinds)
	case *dto.AffinityReportDTO:
		return FromRecords("Afinidad de productos", r.Pairs, Kinds{
			"frequency": KindNumber, "correlation": KindPercent,
		})
	case *dto.DepletionForecastDTO:
		return FromRecords("Pronóstico de agotamiento", r.Products, Kinds{
			"current_stock": KindNumber, "min_stock": KindNumber, "units_sold": KindNumber,
			"daily_consumption": KindNumber, "days_until_empty": KindNumber, "estimated_empty_date": KindDate,
		})
	case *dto.StockAlertsDTO:
		return FromRecords("Alertas de stock", r.Alerts, Kinds{
			"current_stock": KindNumber, "min_stock": KindNumber, "stock_above_min": KindNumber,
			"daily_consumption": KindNumber, "days_left": KindNumber, "reorder_quantity": KindNumber,
		})
	case *dto.ExcessInventoryDTO:
		return FromRecords("Inventario excedente", r.Products, Kinds{
			"current_stock": KindNumber, "min_stock": KindNumber, "daily_consumption": KindNumber,
			"optimal_stock": KindNumber, "excess_stock": KindNumber, "purchase_price": KindMoney,
			"excess_cost": KindMoney, "days_since_last_sale": KindNumber,
		})
	default:
		return Dataset{}, fmt.Errorf("%w: %q", domain.ErrUnknownReport, report)
	}
}
