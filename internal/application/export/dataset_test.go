package export_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-analytics/internal/application/export"
	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
)

type record struct {
	Name     string            `json:"name"`
	Units    int               `json:"units,omitempty"`
	Amount   decimal.Decimal   `json:"amount"`
	When     *time.Time        `json:"when"`
	Recency  analytics.Recency `json:"recency"`
	Active   bool              `json:"active"`
	Internal string            `json:"-"`
	Untagged int
	hidden   int
}

func TestFromRecords_ColumnasEnOrdenDeDeclaracion(t *testing.T) {
	ds, err := export.FromRecords[record]("Prueba", nil, export.Kinds{"amount": export.KindMoney, "when": export.KindDate})
	require.NoError(t, err)

	keys := make([]string, 0, len(ds.Columns))
	for _, c := range ds.Columns {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"name", "units", "amount", "when", "recency", "active", "Untagged"}, keys)
	assert.Equal(t, export.KindMoney, ds.Columns[2].Kind)
	assert.Equal(t, export.KindDate, ds.Columns[3].Kind)
	assert.Equal(t, export.KindText, ds.Columns[0].Kind)
	assert.Empty(t, ds.Rows)
}

func TestFromRecords_Celdas(t *testing.T) {
	when := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []record{
		{Name: "Ana", Units: 3, Amount: decimal.RequireFromString("10.5"), When: &when, Recency: analytics.RecencyOf(4), Active: true, Untagged: 1, hidden: 9},
		{Name: "Beto", Recency: analytics.NeverPurchased()},
	}

	ds, err := export.FromRecords("Prueba", records, nil)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)

	first := ds.Rows[0]
	assert.Equal(t, "Ana", first[0])
	assert.Equal(t, int64(3), first[1])
	assert.True(t, first[2].(decimal.Decimal).Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, when, first[3])
	assert.Equal(t, int64(4), first[4])
	assert.Equal(t, "sí", first[5])
	assert.Equal(t, int64(1), first[6])

	second := ds.Rows[1]
	assert.Nil(t, second[3], "puntero nil queda vacío")
	assert.Nil(t, second[4], "recencia desconocida queda vacía")
	assert.Equal(t, "no", second[5])
}

func TestFromRecords_SoloStructs(t *testing.T) {
	_, err := export.FromRecords("x", []int{1, 2}, nil)
	assert.Error(t, err)
}
