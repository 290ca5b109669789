package analytics

import (
	"sort"

	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductAffinity par de productos que se compran juntos.
type ProductAffinity struct {
	Product1ID   string          `json:"product1_id"`
	Product1Name string          `json:"product1_name"`
	Product2ID   string          `json:"product2_id"`
	Product2Name string          `json:"product2_name"`
	Frequency    int             `json:"frequency"`   // ventas donde aparecen juntos
	Correlation  decimal.Decimal `json:"correlation"` // frecuencia / min(apariciones) × 100
}

type productPair struct {
	a, b string // a < b
}

// ComputeAffinity cuenta la co-ocurrencia de productos distintos dentro de cada
// venta completada y devuelve los topN pares por correlación descendente
// (desempate por frecuencia). topN ≤ 0 no recorta.
//
// Un producto repetido en varias líneas de la misma venta cuenta una sola vez,
// por lo que la correlación queda siempre en [0, 100].
func ComputeAffinity(sales []entity.Sale, topN int) []ProductAffinity {
	pairs := make(map[productPair]int)
	individual := make(map[string]int)
	names := make(map[string]string)

	for _, s := range sales {
		if !s.IsCompleted() {
			continue
		}
		ids := make([]string, 0, len(s.Items))
		seen := make(map[string]struct{}, len(s.Items))
		for _, it := range s.Items {
			if _, dup := seen[it.ProductID]; dup {
				continue
			}
			seen[it.ProductID] = struct{}{}
			ids = append(ids, it.ProductID)
			names[it.ProductID] = it.ProductName
			individual[it.ProductID]++
		}
		sort.Strings(ids)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				pairs[productPair{a: ids[i], b: ids[j]}]++
			}
		}
	}

	out := make([]ProductAffinity, 0, len(pairs))
	for pair, freq := range pairs {
		base := min(individual[pair.a], individual[pair.b])
		out = append(out, ProductAffinity{
			Product1ID:   pair.a,
			Product1Name: names[pair.a],
			Product2ID:   pair.b,
			Product2Name: names[pair.b],
			Frequency:    freq,
			Correlation:  percent(decimal.NewFromInt(int64(freq)), decimal.NewFromInt(int64(base))),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Correlation.Equal(b.Correlation) {
			return a.Correlation.GreaterThan(b.Correlation)
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		// orden estable entre iguales (el mapa no lo garantiza)
		if a.Product1ID != b.Product1ID {
			return a.Product1ID < b.Product1ID
		}
		return a.Product2ID < b.Product2ID
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}
