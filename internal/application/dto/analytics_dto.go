package dto

import (
	"time"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportRequest parámetros comunes de los reportes de /api/analytics.
type ReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto end_date − 30 días
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
	TopN      int    `query:"top_n"`      // solo afinidad (default 10, max 200)
}

// ── RFM ───────────────────────────────────────────────────────────────────────

// RFMReportDTO respuesta de GET /api/analytics/rfm.
type RFMReportDTO struct {
	Period      PeriodDTO                  `json:"period"`
	GeneratedAt time.Time                  `json:"generated_at"` // "hoy" contra el que se mide la recencia
	Customers   []analytics.RFMAnalysis    `json:"customers"`    // RFMScore descendente; Sin Actividad al final
	Segments    []analytics.SegmentSummary `json:"segments"`
}

// ── Ciclo de vida ─────────────────────────────────────────────────────────────

// LifecycleReportDTO respuesta de GET /api/analytics/customers/lifecycle.
// Usa el historial completo de cada cliente, no una ventana.
type LifecycleReportDTO struct {
	GeneratedAt time.Time                    `json:"generated_at"`
	Customers   []analytics.CustomerLifecycle `json:"customers"`
	Summary     []analytics.LifecycleSummary  `json:"summary"`
}

// ── Retención ─────────────────────────────────────────────────────────────────

// RetentionReportDTO respuesta de GET /api/analytics/retention.
type RetentionReportDTO struct {
	Months  int                         `json:"months"`
	Periods []analytics.RetentionPeriod `json:"periods"` // orden cronológico ascendente
}

// ── Márgenes ──────────────────────────────────────────────────────────────────

// ProfitReportDTO respuesta de GET /api/analytics/margins.
type ProfitReportDTO struct {
	Period PeriodDTO `json:"period"`
	analytics.ProfitReport
}

// ── Afinidad ──────────────────────────────────────────────────────────────────

// AffinityReportDTO respuesta de GET /api/analytics/affinity.
type AffinityReportDTO struct {
	Period PeriodDTO                   `json:"period"`
	TopN   int                         `json:"top_n"`
	Pairs  []analytics.ProductAffinity `json:"pairs"`
}
