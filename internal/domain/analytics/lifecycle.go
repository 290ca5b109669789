package analytics

import (
	"time"

	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LifecycleStatus estado del cliente según la recencia de su última compra.
type LifecycleStatus string

const (
	StatusActive      LifecycleStatus = "Activo"
	StatusAtRisk      LifecycleStatus = "En Riesgo"
	StatusLost        LifecycleStatus = "Perdido"
	StatusInactive    LifecycleStatus = "Inactivo"
	StatusNoPurchases LifecycleStatus = "Sin Compras"
)

// Umbrales de recencia (días desde la última compra).
const (
	activeMaxDays = 30
	atRiskMaxDays = 90
	daysPerMonth  = 30
)

// LifecycleStatuses lista los estados en orden de presentación.
var LifecycleStatuses = []LifecycleStatus{
	StatusActive, StatusAtRisk, StatusLost, StatusInactive, StatusNoPurchases,
}

// CustomerLifecycle registro derivado del historial completo de un cliente.
type CustomerLifecycle struct {
	CustomerID            string          `json:"customer_id"`
	CustomerName          string          `json:"customer_name"`
	FirstPurchase         *time.Time      `json:"first_purchase"`
	LastPurchase          *time.Time      `json:"last_purchase"`
	DaysAsCustomer        int             `json:"days_as_customer"`
	DaysSinceLastPurchase Recency         `json:"days_since_last_purchase"`
	TotalPurchases        int             `json:"total_purchases"`
	TotalValue            decimal.Decimal `json:"total_value"`
	AverageValue          decimal.Decimal `json:"average_value"`
	PurchasesPerMonth     decimal.Decimal `json:"purchases_per_month"`
	Status                LifecycleStatus `json:"status"`
}

// ClassifyLifecycle deriva el ciclo de vida a partir del historial completo
// (no solo la ventana) de ventas completadas, ordenado ascendentemente.
func ClassifyLifecycle(c entity.Customer, now time.Time) CustomerLifecycle {
	out := CustomerLifecycle{
		CustomerID:            c.ID,
		CustomerName:          c.Name,
		DaysSinceLastPurchase: NeverPurchased(),
		TotalValue:            decimal.Zero,
		AverageValue:          decimal.Zero,
		PurchasesPerMonth:     decimal.Zero,
	}

	var completed []entity.Sale
	for _, s := range c.Sales {
		if s.IsCompleted() {
			completed = append(completed, s)
		}
	}
	out.TotalPurchases = len(completed)
	if out.TotalPurchases == 0 {
		out.Status = StatusNoPurchases
		return out
	}

	first := completed[0].Date
	last := completed[len(completed)-1].Date
	out.FirstPurchase = &first
	out.LastPurchase = &last

	for _, s := range completed {
		out.TotalValue = out.TotalValue.Add(s.TotalAmount)
	}
	count := decimal.NewFromInt(int64(out.TotalPurchases))
	out.AverageValue = out.TotalValue.Div(count).Round(2)

	out.DaysAsCustomer = max(DaysBetween(first, now), 0)
	if out.DaysAsCustomer > 0 {
		// count / (days/30) = count×30 / days
		out.PurchasesPerMonth = count.Mul(decimal.NewFromInt(daysPerMonth)).
			Div(decimal.NewFromInt(int64(out.DaysAsCustomer))).Round(2)
	}

	out.DaysSinceLastPurchase = RecencyOf(DaysBetween(last, now))
	out.Status = lifecycleStatus(out.TotalPurchases, out.LastPurchase, out.DaysSinceLastPurchase)
	return out
}

func lifecycleStatus(count int, last *time.Time, since Recency) LifecycleStatus {
	if count == 0 {
		return StatusNoPurchases
	}
	days, ok := since.Days()
	if last == nil || !ok {
		return StatusInactive
	}
	switch {
	case days <= activeMaxDays:
		return StatusActive
	case days <= atRiskMaxDays:
		return StatusAtRisk
	default:
		return StatusLost
	}
}

// LifecycleSummary cantidad de clientes por estado.
type LifecycleSummary struct {
	Status    LifecycleStatus `json:"status"`
	Customers int             `json:"customers"`
}

// SummarizeLifecycle cuenta clientes por estado en el orden de LifecycleStatuses.
func SummarizeLifecycle(records []CustomerLifecycle) []LifecycleSummary {
	counts := make(map[LifecycleStatus]int, len(LifecycleStatuses))
	for _, r := range records {
		counts[r.Status]++
	}
	out := make([]LifecycleSummary, 0, len(LifecycleStatuses))
	for _, s := range LifecycleStatuses {
		out = append(out, LifecycleSummary{Status: s, Customers: counts[s]})
	}
	return out
}
