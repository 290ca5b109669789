package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del período combinando ventas, clientes e inventario.
type DashboardSummaryDTO struct {
	Period    PeriodDTO `json:"period"`
	DateLabel string    `json:"date_label"` // "Febrero 2026" si es un mes completo; si no, el rango

	// Ventas
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	SalesCount    int             `json:"sales_count"`
	TopCategory   string          `json:"top_category,omitempty"` // categoría con mayor margen

	// Clientes
	ActiveCustomers int `json:"active_customers"` // con al menos una compra en el período
	Champions       int `json:"champions"`
	AtRisk          int `json:"at_risk"`

	// Inventario
	CriticalAlerts  int             `json:"critical_alerts"`
	LowAlerts       int             `json:"low_alerts"`
	ExcessStockCost decimal.Decimal `json:"excess_stock_cost"`
}
