package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ExcessInventory producto con stock por encima del óptimo.
type ExcessInventory struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Category          string          `json:"category"`
	CurrentStock      int             `json:"current_stock"`
	MinStock          int             `json:"min_stock"`
	DailyConsumption  decimal.Decimal `json:"daily_consumption"`
	OptimalStock      int             `json:"optimal_stock"`
	ExcessStock       int             `json:"excess_stock"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	ExcessCost        decimal.Decimal `json:"excess_cost"`
	DaysSinceLastSale *int            `json:"days_since_last_sale"`
}

// EvaluateExcess calcula stock óptimo = mínimo + ⌈consumo diario × 30⌉ y el
// excedente = max(0, stock − óptimo), valorizado a precio de compra.
func EvaluateExcess(pc ProductConsumption, windowDays int, now time.Time) ExcessInventory {
	c := NewConsumption(pc.UnitsSold, windowDays)
	optimal := pc.Product.MinStock + c.UnitsFor(excessBufferDay)
	excess := max(0, pc.Product.Stock-optimal)
	e := ExcessInventory{
		ProductID:        pc.Product.ID,
		ProductName:      pc.Product.Name,
		Category:         pc.Product.Category,
		CurrentStock:     pc.Product.Stock,
		MinStock:         pc.Product.MinStock,
		DailyConsumption: c.Daily(),
		OptimalStock:     optimal,
		ExcessStock:      excess,
		PurchasePrice:    pc.Product.PurchasePrice,
		ExcessCost:       pc.Product.PurchasePrice.Mul(decimal.NewFromInt(int64(excess))).Round(2),
	}
	if pc.LastSaleAt != nil {
		d := max(DaysBetween(*pc.LastSaleAt, now), 0)
		e.DaysSinceLastSale = &d
	}
	return e
}

// DetectExcessInventory devuelve solo los productos con excedente > 0,
// ordenados por costo del excedente descendente.
func DetectExcessInventory(items []ProductConsumption, windowDays int, now time.Time) []ExcessInventory {
	out := make([]ExcessInventory, 0)
	for _, it := range items {
		e := EvaluateExcess(it, windowDays, now)
		if e.ExcessStock <= 0 {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExcessCost.GreaterThan(out[j].ExcessCost)
	})
	return out
}

// TotalExcessCost suma el costo de todos los excedentes.
func TotalExcessCost(items []ExcessInventory) decimal.Decimal {
	total := decimal.Zero
	for _, e := range items {
		total = total.Add(e.ExcessCost)
	}
	return total
}
