package analytics_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/entity"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func daysAgo(n int) time.Time { return testNow.AddDate(0, 0, -n) }

// ──────────────────────────────────────────────────────────────────────────────
// Árbol de segmentos
// ──────────────────────────────────────────────────────────────────────────────

func TestSegmentFor_ReglasEnOrden(t *testing.T) {
	cases := []struct {
		r, f, m analytics.Score
		want    analytics.Segment
	}{
		{5, 5, 5, analytics.SegmentChampions},
		{4, 4, 4, analytics.SegmentChampions},
		{3, 3, 3, analytics.SegmentLoyal},
		{5, 3, 4, analytics.SegmentLoyal},
		{4, 3, 3, analytics.SegmentLoyal}, // Leales gana sobre Potenciales
		{4, 2, 3, analytics.SegmentPotential},
		{5, 1, 1, analytics.SegmentPotential}, // Potenciales gana sobre Nuevos
		{2, 4, 4, analytics.SegmentAtRisk},
		{1, 3, 3, analytics.SegmentAtRisk},
		{2, 3, 2, analytics.SegmentNeedsAttention},
		{1, 5, 1, analytics.SegmentNeedsAttention},
		{4, 2, 5, analytics.SegmentNew},
		{5, 1, 4, analytics.SegmentNew},
		{2, 2, 5, analytics.SegmentDormant},
		{1, 1, 1, analytics.SegmentDormant},
		{3, 2, 2, analytics.SegmentOccasional},
		{3, 1, 5, analytics.SegmentOccasional},
		{3, 4, 2, analytics.SegmentOccasional},
	}
	for _, tc := range cases {
		s := analytics.RFMScores{R: tc.r, F: tc.f, M: tc.m}
		assert.Equal(t, tc.want, analytics.SegmentFor(s), "R=%d F=%d M=%d", tc.r, tc.f, tc.m)
	}
}

// Toda combinación de puntajes cae en exactamente uno de los 8 segmentos puntuables.
func TestSegmentFor_TodasLasCombinaciones(t *testing.T) {
	valid := map[analytics.Segment]bool{}
	for _, s := range analytics.Segments {
		valid[s] = true
	}
	for r := analytics.Score(1); r <= 5; r++ {
		for f := analytics.Score(1); f <= 5; f++ {
			for m := analytics.Score(1); m <= 5; m++ {
				s := analytics.RFMScores{R: r, F: f, M: m}
				got := analytics.SegmentFor(s)
				assert.True(t, valid[got])
				assert.NotEqual(t, analytics.SegmentNoActivity, got)
				assert.Equal(t, got, analytics.SegmentFor(s), "debe ser determinista")
			}
		}
	}
}

func TestRFMScores_Combined(t *testing.T) {
	assert.Equal(t, 555, analytics.RFMScores{R: 5, F: 5, M: 5}.Combined())
	assert.Equal(t, 111, analytics.RFMScores{R: 1, F: 1, M: 1}.Combined())
	assert.Equal(t, 342, analytics.RFMScores{R: 3, F: 4, M: 2}.Combined())
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación
// ──────────────────────────────────────────────────────────────────────────────

func tenCustomerPopulation() []analytics.RFMInput {
	inputs := make([]analytics.RFMInput, 0, 11)
	// cliente estrella: el más reciente, el más frecuente y el de mayor monto
	inputs = append(inputs, analytics.RFMInput{
		CustomerID: "star", CustomerName: "Estrella",
		Recency: analytics.RecencyOf(5), Frequency: 20, Monetary: dec("5000"),
	})
	for i := 1; i <= 9; i++ {
		inputs = append(inputs, analytics.RFMInput{
			CustomerID:   fmt.Sprintf("c%d", i),
			CustomerName: fmt.Sprintf("Cliente %d", i),
			Recency:      analytics.RecencyOf(10 + i*10),
			Frequency:    i,
			Monetary:     decimal.NewFromInt(int64(100 * i)),
		})
	}
	return inputs
}

func TestClassifyRFM_ClienteEstrellaEsCampeon(t *testing.T) {
	result := analytics.ClassifyRFM(tenCustomerPopulation())
	require.Len(t, result, 10)

	star := result[0]
	assert.Equal(t, "star", star.CustomerID, "el mayor puntaje va primero")
	assert.Equal(t, analytics.Score(5), star.RScore)
	assert.Equal(t, analytics.Score(5), star.FScore)
	assert.Equal(t, analytics.Score(5), star.MScore)
	assert.Equal(t, 555, star.RFMScore)
	assert.Equal(t, analytics.SegmentChampions, star.Segment)
}

func TestClassifyRFM_OrdenDescendenteYSinActividadAlFinal(t *testing.T) {
	inputs := tenCustomerPopulation()
	inputs = append([]analytics.RFMInput{{
		CustomerID: "ghost", CustomerName: "Sin compras",
		Recency: analytics.NeverPurchased(), Monetary: decimal.Zero,
	}}, inputs...)

	result := analytics.ClassifyRFM(inputs)
	require.Len(t, result, 11)

	last := result[len(result)-1]
	assert.Equal(t, "ghost", last.CustomerID)
	assert.Equal(t, analytics.SegmentNoActivity, last.Segment)
	assert.Equal(t, 0, last.RFMScore)
	_, known := last.RecencyDays.Days()
	assert.False(t, known)

	for i := 1; i < len(result)-1; i++ {
		assert.GreaterOrEqual(t, result[i-1].RFMScore, result[i].RFMScore)
	}
	for _, r := range result[:len(result)-1] {
		for _, s := range []analytics.Score{r.RScore, r.FScore, r.MScore} {
			assert.GreaterOrEqual(t, int(s), 1)
			assert.LessOrEqual(t, int(s), 5)
		}
	}
}

// Un cliente sin compras no debe alterar los cortes de los demás.
func TestClassifyRFM_SinActividadNoAfectaQuintiles(t *testing.T) {
	base := analytics.ClassifyRFM(tenCustomerPopulation())

	withGhosts := tenCustomerPopulation()
	for i := 0; i < 5; i++ {
		withGhosts = append(withGhosts, analytics.RFMInput{
			CustomerID: fmt.Sprintf("ghost%d", i), Recency: analytics.NeverPurchased(),
		})
	}
	got := analytics.ClassifyRFM(withGhosts)

	assert.Equal(t, base, got[:len(base)])
}

func TestClassifyRFM_PoblacionSoloInactiva(t *testing.T) {
	result := analytics.ClassifyRFM([]analytics.RFMInput{
		{CustomerID: "a", Recency: analytics.NeverPurchased()},
		{CustomerID: "b", Recency: analytics.NeverPurchased()},
	})
	require.Len(t, result, 2)
	for _, r := range result {
		assert.Equal(t, analytics.SegmentNoActivity, r.Segment)
	}
}

func TestClassifyRFM_Vacio(t *testing.T) {
	assert.Empty(t, analytics.ClassifyRFM(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas desde ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildRFMInputs_SoloVentasCompletadasEnVentana(t *testing.T) {
	period := analytics.Period{Start: daysAgo(60), End: daysAgo(10)}
	customers := []entity.Customer{
		{
			ID: "c1", Name: "Ana",
			Sales: []entity.Sale{
				{ID: "s0", Date: daysAgo(90), TotalAmount: dec("999"), Status: entity.SaleStatusCompleted}, // fuera de ventana
				{ID: "s1", Date: daysAgo(50), TotalAmount: dec("100"), Status: entity.SaleStatusCompleted},
				{ID: "s2", Date: daysAgo(20), TotalAmount: dec("50.5"), Status: entity.SaleStatusCompleted},
				{ID: "s3", Date: daysAgo(15), TotalAmount: dec("700"), Status: entity.SaleStatusPending},
				{ID: "s4", Date: daysAgo(12), TotalAmount: dec("800"), Status: entity.SaleStatusCancelled},
			},
		},
		{ID: "c2", Name: "Beto"},
	}

	inputs := analytics.BuildRFMInputs(customers, period, testNow)
	require.Len(t, inputs, 2)

	ana := inputs[0]
	assert.Equal(t, 2, ana.Frequency)
	assert.True(t, dec("150.5").Equal(ana.Monetary))
	days, ok := ana.Recency.Days()
	require.True(t, ok)
	assert.Equal(t, 20, days, "la recencia se mide contra hoy, no contra el fin de la ventana")

	beto := inputs[1]
	assert.Equal(t, 0, beto.Frequency)
	_, ok = beto.Recency.Days()
	assert.False(t, ok)
}

func TestSummarizeSegments(t *testing.T) {
	records := []analytics.RFMAnalysis{
		{Segment: analytics.SegmentChampions, Monetary: dec("300")},
		{Segment: analytics.SegmentChampions, Monetary: dec("100")},
		{Segment: analytics.SegmentDormant, Monetary: dec("10")},
		{Segment: analytics.SegmentNoActivity, Monetary: decimal.Zero},
	}
	summary := analytics.SummarizeSegments(records)
	require.Len(t, summary, len(analytics.Segments))

	champions := summary[0]
	assert.Equal(t, analytics.SegmentChampions, champions.Segment)
	assert.Equal(t, 2, champions.Customers)
	assert.True(t, dec("50").Equal(champions.SharePct))
	assert.True(t, dec("200").Equal(champions.AvgMonetary))

	total := 0
	for _, s := range summary {
		total += s.Customers
	}
	assert.Equal(t, len(records), total)
}

func TestRecency_JSON(t *testing.T) {
	b, err := json.Marshal(analytics.RFMAnalysis{RecencyDays: analytics.NeverPurchased(), Monetary: decimal.Zero})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"recency_days":null`)

	b, err = json.Marshal(analytics.RecencyOf(12))
	require.NoError(t, err)
	assert.Equal(t, "12", string(b))

	var r analytics.Recency
	require.NoError(t, json.Unmarshal([]byte("null"), &r))
	_, ok := r.Days()
	assert.False(t, ok)
}
