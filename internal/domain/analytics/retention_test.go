package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/entity"
)

func set(ids ...string) analytics.CustomerSet {
	s := analytics.CustomerSet{}
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestComputeRetention_Escenario(t *testing.T) {
	got := analytics.ComputeRetention(set("1", "2", "3"), set("2", "3", "4"))

	assert.Equal(t, 3, got.TotalCustomers)
	assert.Equal(t, 1, got.NewCustomers)
	assert.Equal(t, 2, got.ReturningCustomers)
	assert.Equal(t, 1, got.LostCustomers)
	assert.True(t, dec("66.67").Equal(got.RetentionRate), got.RetentionRate.String())
}

func TestComputeRetention_AnteriorVacio(t *testing.T) {
	got := analytics.ComputeRetention(set(), set("a", "b"))

	assert.Equal(t, 2, got.NewCustomers)
	assert.Equal(t, 0, got.ReturningCustomers)
	assert.Equal(t, 0, got.LostCustomers)
	assert.True(t, got.RetentionRate.IsZero())
}

func TestComputeRetention_Invariantes(t *testing.T) {
	cases := [][2]analytics.CustomerSet{
		{set("1", "2", "3"), set("2", "3", "4")},
		{set(), set()},
		{set("a"), set()},
		{set("a", "b", "c", "d"), set("a", "b", "c", "d")},
		{set("x", "y"), set("z")},
	}
	for _, tc := range cases {
		prev, cur := tc[0], tc[1]
		got := analytics.ComputeRetention(prev, cur)
		assert.Equal(t, got.TotalCustomers, got.NewCustomers+got.ReturningCustomers)
		assert.Equal(t, len(prev), got.ReturningCustomers+got.LostCustomers)
		assert.False(t, got.RetentionRate.IsNegative())
		assert.True(t, got.RetentionRate.LessThanOrEqual(dec("100")))
	}
}

func TestMonthlyRetention_OrdenCronologico(t *testing.T) {
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	on := func(customer string, month time.Month, status entity.SaleStatus) entity.Sale {
		return entity.Sale{
			CustomerID: customer, Date: time.Date(2026, month, 10, 0, 0, 0, 0, time.UTC),
			TotalAmount: dec("1"), Status: status,
		}
	}
	sales := []entity.Sale{
		on("1", time.January, entity.SaleStatusCompleted),
		on("2", time.January, entity.SaleStatusCompleted),
		on("3", time.January, entity.SaleStatusCompleted),
		on("2", time.February, entity.SaleStatusCompleted),
		on("3", time.February, entity.SaleStatusCompleted),
		on("4", time.February, entity.SaleStatusCompleted),
		on("9", time.February, entity.SaleStatusCancelled),
		on("4", time.March, entity.SaleStatusCompleted),
	}

	got := analytics.MonthlyRetention(sales, end, 2)
	require.Len(t, got, 2)

	feb, mar := got[0], got[1]
	assert.Equal(t, "2026-02", feb.Period)
	assert.Equal(t, 3, feb.TotalCustomers)
	assert.Equal(t, 2, feb.ReturningCustomers)
	assert.True(t, dec("66.67").Equal(feb.RetentionRate))

	assert.Equal(t, "2026-03", mar.Period)
	assert.Equal(t, 1, mar.TotalCustomers)
	assert.Equal(t, 1, mar.ReturningCustomers)
	assert.Equal(t, 2, mar.LostCustomers)
	assert.True(t, mar.PeriodStart.Before(mar.PeriodEnd))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), mar.PeriodStart)
}

func TestRetentionWindow_IncluyeMesBase(t *testing.T) {
	end := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	w := analytics.RetentionWindow(end, 6)

	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.True(t, w.Contains(time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)))
}
