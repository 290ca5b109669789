package analytics

import (
	"time"

	"github.com/jhoicas/pos-analytics/internal/domain/entity"
)

// BuildConsumption cruza el catálogo con las ventas completadas de period:
// unidades vendidas y fecha de la última venta por producto.
// Los productos sin ventas quedan con UnitsSold = 0 y LastSaleAt = nil.
func BuildConsumption(products []entity.Product, sales []entity.Sale, period Period) []ProductConsumption {
	type acc struct {
		units int
		last  time.Time
	}
	byProduct := make(map[string]*acc, len(products))
	for _, s := range sales {
		if !s.IsCompleted() || !period.Contains(s.Date) {
			continue
		}
		for _, it := range s.Items {
			a, ok := byProduct[it.ProductID]
			if !ok {
				a = &acc{}
				byProduct[it.ProductID] = a
			}
			a.units += it.Quantity
			if s.Date.After(a.last) {
				a.last = s.Date
			}
		}
	}

	out := make([]ProductConsumption, 0, len(products))
	for _, p := range products {
		pc := ProductConsumption{Product: p}
		if a, ok := byProduct[p.ID]; ok {
			pc.UnitsSold = a.units
			last := a.last
			pc.LastSaleAt = &last
		}
		out = append(out, pc)
	}
	return out
}
