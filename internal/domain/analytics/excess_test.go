package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
)

func TestEvaluateExcess_Calculo(t *testing.T) {
	last := daysAgo(4)
	pc := consumption("p1", 100, 20, 30)
	pc.LastSaleAt = &last

	e := analytics.EvaluateExcess(pc, 30, testNow)

	// óptimo = 20 + ⌈1×30⌉ = 50; excedente = 50 a precio de compra 2
	assert.Equal(t, 50, e.OptimalStock)
	assert.Equal(t, 50, e.ExcessStock)
	assert.True(t, dec("100").Equal(e.ExcessCost))
	require.NotNil(t, e.DaysSinceLastSale)
	assert.Equal(t, 4, *e.DaysSinceLastSale)
}

func TestDetectExcessInventory_StockEnOptimoNoAparece(t *testing.T) {
	items := []analytics.ProductConsumption{
		consumption("justo", 50, 20, 30),   // stock = óptimo
		consumption("debajo", 10, 20, 30),  // bajo el mínimo
		consumption("chico", 60, 20, 30),   // 10 de excedente
		consumption("grande", 500, 20, 30), // 450 de excedente
		consumption("muerto", 40, 5, 0),    // sin ventas: óptimo = mínimo
	}

	got := analytics.DetectExcessInventory(items, 30, testNow)
	require.Len(t, got, 3)
	assert.Equal(t, "grande", got[0].ProductID)
	assert.Equal(t, "muerto", got[1].ProductID)
	assert.Equal(t, "chico", got[2].ProductID)
	assert.Nil(t, got[1].DaysSinceLastSale)

	for _, e := range got {
		assert.Positive(t, e.ExcessStock)
		assert.Equal(t, e.CurrentStock-e.OptimalStock, e.ExcessStock)
	}

	// 450×2 + 35×2 + 10×2
	assert.True(t, dec("990").Equal(analytics.TotalExcessCost(got)))
}
