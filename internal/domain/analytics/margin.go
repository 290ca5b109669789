package analytics

import (
	"sort"

	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel categoría asignada a productos sin categoría.
const UncategorizedLabel = "Sin Categoría"

// ProductMargin ingresos, costo y margen de un producto en el período.
type ProductMargin struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category"`
	UnitsSold     int             `json:"units_sold"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// CategoryMargin agregado por categoría. MarginPercent se recalcula con los
// totales de la categoría, nunca como promedio de los porcentajes por producto.
type CategoryMargin struct {
	Category      string          `json:"category"`
	Products      int             `json:"products"`
	UnitsSold     int             `json:"units_sold"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// ProfitReport márgenes por producto, por categoría y totales del período.
type ProfitReport struct {
	Products           []ProductMargin  `json:"products"`
	Categories         []CategoryMargin `json:"categories"`
	TotalRevenue       decimal.Decimal  `json:"total_revenue"`
	TotalCost          decimal.Decimal  `json:"total_cost"`
	TotalMargin        decimal.Decimal  `json:"total_margin"`
	TotalMarginPercent decimal.Decimal  `json:"total_margin_percent"`
}

// AggregateProfit acumula por línea de venta completada:
// ingreso = precio unitario × cantidad, costo = precio de compra × cantidad
// (0 si no hay precio de compra). Los productos y categorías quedan ordenados
// por margen descendente.
func AggregateProfit(sales []entity.Sale) ProfitReport {
	byProduct := make(map[string]*ProductMargin)
	var order []string
	for _, s := range sales {
		if !s.IsCompleted() {
			continue
		}
		for _, it := range s.Items {
			pm, ok := byProduct[it.ProductID]
			if !ok {
				category := it.Category
				if category == "" {
					category = UncategorizedLabel
				}
				pm = &ProductMargin{
					ProductID:   it.ProductID,
					ProductName: it.ProductName,
					Category:    category,
					Revenue:     decimal.Zero,
					Cost:        decimal.Zero,
				}
				byProduct[it.ProductID] = pm
				order = append(order, it.ProductID)
			}
			pm.UnitsSold += it.Quantity
			pm.Revenue = pm.Revenue.Add(it.Subtotal())
			pm.Cost = pm.Cost.Add(it.Cost())
		}
	}

	report := ProfitReport{
		Products:   make([]ProductMargin, 0, len(order)),
		Categories: []CategoryMargin{},
	}
	byCategory := make(map[string]*CategoryMargin)
	var categoryOrder []string
	totalRevenue, totalCost := decimal.Zero, decimal.Zero

	for _, id := range order {
		pm := byProduct[id]
		pm.Margin = pm.Revenue.Sub(pm.Cost)
		pm.MarginPercent = percent(pm.Margin, pm.Revenue)
		report.Products = append(report.Products, *pm)

		cm, ok := byCategory[pm.Category]
		if !ok {
			cm = &CategoryMargin{Category: pm.Category, Revenue: decimal.Zero, Cost: decimal.Zero, Margin: decimal.Zero}
			byCategory[pm.Category] = cm
			categoryOrder = append(categoryOrder, pm.Category)
		}
		cm.Products++
		cm.UnitsSold += pm.UnitsSold
		cm.Revenue = cm.Revenue.Add(pm.Revenue)
		cm.Cost = cm.Cost.Add(pm.Cost)
		cm.Margin = cm.Margin.Add(pm.Margin)

		totalRevenue = totalRevenue.Add(pm.Revenue)
		totalCost = totalCost.Add(pm.Cost)
	}

	for _, c := range categoryOrder {
		cm := byCategory[c]
		cm.MarginPercent = percent(cm.Margin, cm.Revenue)
		report.Categories = append(report.Categories, *cm)
	}

	sort.SliceStable(report.Products, func(i, j int) bool {
		return report.Products[i].Margin.GreaterThan(report.Products[j].Margin)
	})
	sort.SliceStable(report.Categories, func(i, j int) bool {
		return report.Categories[i].Margin.GreaterThan(report.Categories[j].Margin)
	})

	report.TotalRevenue = totalRevenue
	report.TotalCost = totalCost
	report.TotalMargin = totalRevenue.Sub(totalCost)
	report.TotalMarginPercent = percent(report.TotalMargin, totalRevenue)
	return report
}
