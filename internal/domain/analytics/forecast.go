package analytics

import (
	"sort"
	"time"

	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AlertLevel nivel de alerta temprana de stock.
type AlertLevel string

const (
	AlertCritical AlertLevel = "crítico"
	AlertLow      AlertLevel = "bajo"
	AlertAdequate AlertLevel = "adecuado"
)

const (
	lowStockDays    = 7  // días sobre el mínimo que disparan la alerta "bajo"
	coverageDays    = 30 // días de consumo que se buscan cubrir al reponer
	excessBufferDay = 30 // días de consumo que se suman al mínimo para el stock óptimo
)

// ProductConsumption foto de un producto con lo vendido en la ventana.
type ProductConsumption struct {
	Product    entity.Product
	UnitsSold  int
	LastSaleAt *time.Time // venta completada más reciente en la ventana
}

// Consumption tasa de consumo expresada como unidades vendidas en N días.
// Se conserva la fracción para evitar redondeos acumulados.
type Consumption struct {
	UnitsSold  int
	WindowDays int
}

// NewConsumption construye la tasa; la ventana mínima es 1 día.
func NewConsumption(unitsSold, windowDays int) Consumption {
	return Consumption{UnitsSold: max(unitsSold, 0), WindowDays: max(windowDays, 1)}
}

// Daily devuelve unidades por día redondeadas a 2 decimales (para mostrar).
func (c Consumption) Daily() decimal.Decimal {
	return decimal.NewFromInt(int64(c.UnitsSold)).
		Div(decimal.NewFromInt(int64(c.WindowDays))).Round(2)
}

// DaysToConsume devuelve ⌈units / consumo diario⌉, o Never si no hay consumo.
func (c Consumption) DaysToConsume(units int) DaysRemaining {
	if c.UnitsSold == 0 {
		return Never()
	}
	if units <= 0 {
		return InDays(0)
	}
	return InDays(ceilDiv(
		decimal.NewFromInt(int64(units)*int64(c.WindowDays)),
		decimal.NewFromInt(int64(c.UnitsSold)),
	))
}

// UnitsFor devuelve ⌈consumo diario × days⌉.
func (c Consumption) UnitsFor(days int) int {
	if c.UnitsSold == 0 {
		return 0
	}
	return ceilDiv(
		decimal.NewFromInt(int64(c.UnitsSold)*int64(days)),
		decimal.NewFromInt(int64(c.WindowDays)),
	)
}

// StockPrediction pronóstico de agotamiento de un producto.
type StockPrediction struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Category           string          `json:"category"`
	CurrentStock       int             `json:"current_stock"`
	MinStock           int             `json:"min_stock"`
	UnitsSold          int             `json:"units_sold"`
	DailyConsumption   decimal.Decimal `json:"daily_consumption"`
	DaysUntilEmpty     DaysRemaining   `json:"days_until_empty"`
	EstimatedEmptyDate *time.Time      `json:"estimated_empty_date"`
}

// PredictStock extrapola linealmente el consumo de la ventana.
func PredictStock(pc ProductConsumption, windowDays int, now time.Time) StockPrediction {
	c := NewConsumption(pc.UnitsSold, windowDays)
	p := StockPrediction{
		ProductID:        pc.Product.ID,
		ProductName:      pc.Product.Name,
		Category:         pc.Product.Category,
		CurrentStock:     pc.Product.Stock,
		MinStock:         pc.Product.MinStock,
		UnitsSold:        c.UnitsSold,
		DailyConsumption: c.Daily(),
		DaysUntilEmpty:   c.DaysToConsume(pc.Product.Stock),
	}
	if days, ok := p.DaysUntilEmpty.Days(); ok {
		d := now.AddDate(0, 0, days)
		p.EstimatedEmptyDate = &d
	}
	return p
}

// RankByDepletion devuelve los productos que se agotarán primero, excluyendo
// los que nunca se vacían (consumo cero). limit ≤ 0 no recorta.
func RankByDepletion(items []ProductConsumption, windowDays int, now time.Time, limit int) []StockPrediction {
	out := make([]StockPrediction, 0, len(items))
	for _, it := range items {
		p := PredictStock(it, windowDays, now)
		if p.DaysUntilEmpty.IsNever() {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntilEmpty.Less(out[j].DaysUntilEmpty)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// StockAlert alerta temprana de stock con cantidad sugerida de reposición.
type StockAlert struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Category         string          `json:"category"`
	CurrentStock     int             `json:"current_stock"`
	MinStock         int             `json:"min_stock"`
	StockAboveMin    int             `json:"stock_above_min"`
	DailyConsumption decimal.Decimal `json:"daily_consumption"`
	DaysLeft         DaysRemaining   `json:"days_left"`
	AlertLevel       AlertLevel      `json:"alert_level"`
	ReorderQuantity  int             `json:"reorder_quantity"`
}

// EvaluateStockAlert calcula el nivel de alerta de un producto:
// crítico si stock ≤ mínimo; bajo si quedan ≤ 7 días sobre el mínimo; si no, adecuado.
func EvaluateStockAlert(pc ProductConsumption, windowDays int) StockAlert {
	c := NewConsumption(pc.UnitsSold, windowDays)
	stock, minStock := pc.Product.Stock, pc.Product.MinStock
	above := max(0, stock-minStock)
	a := StockAlert{
		ProductID:        pc.Product.ID,
		ProductName:      pc.Product.Name,
		Category:         pc.Product.Category,
		CurrentStock:     stock,
		MinStock:         minStock,
		StockAboveMin:    above,
		DailyConsumption: c.Daily(),
		DaysLeft:         c.DaysToConsume(above),
		ReorderQuantity:  max(0, c.UnitsFor(coverageDays)-stock),
	}
	switch {
	case stock <= minStock:
		a.AlertLevel = AlertCritical
	case a.DaysLeft.Within(lowStockDays):
		a.AlertLevel = AlertLow
	default:
		a.AlertLevel = AlertAdequate
	}
	return a
}

// BuildStockAlerts devuelve solo las alertas crítico y bajo; primero las
// críticas, luego por días restantes ascendentes.
func BuildStockAlerts(items []ProductConsumption, windowDays int) []StockAlert {
	out := make([]StockAlert, 0)
	for _, it := range items {
		a := EvaluateStockAlert(it, windowDays)
		if a.AlertLevel == AlertAdequate {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := out[i].AlertLevel == AlertCritical, out[j].AlertLevel == AlertCritical
		if ci != cj {
			return ci
		}
		return out[i].DaysLeft.Less(out[j].DaysLeft)
	})
	return out
}
