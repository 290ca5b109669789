package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/entity"
)

func basket(status entity.SaleStatus, products ...string) entity.Sale {
	items := make([]entity.SaleItem, 0, len(products))
	for _, p := range products {
		items = append(items, entity.SaleItem{ProductID: p, ProductName: "Producto " + p, Quantity: 1, UnitPrice: dec("1")})
	}
	return entity.Sale{Status: status, Date: testNow, TotalAmount: dec("1"), Items: items}
}

func TestComputeAffinity_CorrelacionYOrden(t *testing.T) {
	sales := []entity.Sale{
		basket(entity.SaleStatusCompleted, "pan", "leche"),
		basket(entity.SaleStatusCompleted, "pan", "leche", "huevos"),
		basket(entity.SaleStatusCompleted, "pan"),
		basket(entity.SaleStatusCompleted, "leche", "huevos"),
		basket(entity.SaleStatusCancelled, "pan", "huevos"),
	}

	got := analytics.ComputeAffinity(sales, 0)
	require.Len(t, got, 3)

	// huevos-leche: 2 juntas / min(2,3) = 100
	assert.Equal(t, "huevos", got[0].Product1ID)
	assert.Equal(t, "leche", got[0].Product2ID)
	assert.Equal(t, 2, got[0].Frequency)
	assert.True(t, dec("100").Equal(got[0].Correlation))

	// leche-pan: 2 / min(3,3) = 66.67
	assert.Equal(t, "leche", got[1].Product1ID)
	assert.Equal(t, "pan", got[1].Product2ID)
	assert.True(t, dec("66.67").Equal(got[1].Correlation))

	// huevos-pan: 1 / min(2,3) = 50 (la cancelada no cuenta)
	assert.Equal(t, 1, got[2].Frequency)
	assert.True(t, dec("50").Equal(got[2].Correlation))
}

func TestComputeAffinity_ProductoRepetidoEnLaVenta(t *testing.T) {
	sales := []entity.Sale{
		basket(entity.SaleStatusCompleted, "a", "a", "b"),
		basket(entity.SaleStatusCompleted, "a", "b", "b"),
	}

	got := analytics.ComputeAffinity(sales, 0)
	require.Len(t, got, 1, "un producto nunca forma par consigo mismo")
	assert.Equal(t, 2, got[0].Frequency)
	assert.True(t, dec("100").Equal(got[0].Correlation))
}

func TestComputeAffinity_RangoYTopN(t *testing.T) {
	sales := []entity.Sale{
		basket(entity.SaleStatusCompleted, "a", "b", "c", "d"),
		basket(entity.SaleStatusCompleted, "a", "b"),
		basket(entity.SaleStatusCompleted, "c", "d", "e"),
		basket(entity.SaleStatusCompleted, "a", "e"),
	}

	all := analytics.ComputeAffinity(sales, 0)
	for _, p := range all {
		assert.True(t, p.Product1ID < p.Product2ID)
		assert.False(t, p.Correlation.IsNegative())
		assert.True(t, p.Correlation.LessThanOrEqual(dec("100")))
	}

	top := analytics.ComputeAffinity(sales, 2)
	require.Len(t, top, 2)
	assert.Equal(t, all[:2], top)
}

func TestComputeAffinity_SinVentas(t *testing.T) {
	assert.Empty(t, analytics.ComputeAffinity(nil, 10))
}
