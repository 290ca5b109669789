package analytics

import (
	"cmp"
	"sort"
	"time"

	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Segment etiqueta de segmento de marketing RFM.
type Segment string

// Segmentos RFM. SegmentNoActivity agrupa a los clientes sin compras en la ventana.
const (
	SegmentChampions      Segment = "Campeones"
	SegmentLoyal          Segment = "Leales"
	SegmentPotential      Segment = "Potenciales"
	SegmentAtRisk         Segment = "En Riesgo"
	SegmentNeedsAttention Segment = "Necesitan Atención"
	SegmentNew            Segment = "Nuevos"
	SegmentDormant        Segment = "Durmientes"
	SegmentOccasional     Segment = "Ocasionales"
	SegmentNoActivity     Segment = "Sin Actividad"
)

// Segments lista los 9 segmentos en orden de presentación.
var Segments = []Segment{
	SegmentChampions, SegmentLoyal, SegmentPotential, SegmentAtRisk,
	SegmentNeedsAttention, SegmentNew, SegmentDormant, SegmentOccasional,
	SegmentNoActivity,
}

// RFMScores puntajes R, F y M de un cliente.
type RFMScores struct {
	R, F, M Score
}

// Combined devuelve R×100 + F×10 + M (111..555).
func (s RFMScores) Combined() int {
	return int(s.R)*100 + int(s.F)*10 + int(s.M)
}

type segmentRule struct {
	segment Segment
	match   func(s RFMScores) bool
}

// segmentRules se evalúan en orden; gana la primera que cumple.
// Las combinaciones que no cumplen ninguna (p. ej. R=3, F=2) son Ocasionales.
var segmentRules = []segmentRule{
	{SegmentChampions, func(s RFMScores) bool { return s.R >= 4 && s.F >= 4 && s.M >= 4 }},
	{SegmentLoyal, func(s RFMScores) bool { return s.R >= 3 && s.F >= 3 && s.M >= 3 }},
	{SegmentPotential, func(s RFMScores) bool { return s.R >= 4 && s.F <= 3 && s.M <= 3 }},
	{SegmentAtRisk, func(s RFMScores) bool { return s.R <= 2 && s.F >= 3 && s.M >= 3 }},
	{SegmentNeedsAttention, func(s RFMScores) bool { return s.R <= 2 && s.F >= 3 && s.M <= 3 }},
	{SegmentNew, func(s RFMScores) bool { return s.R >= 4 && s.F <= 2 }},
	{SegmentDormant, func(s RFMScores) bool { return s.R <= 2 && s.F <= 2 }},
}

// SegmentFor clasifica un conjunto de puntajes. Es función pura de (R, F, M).
func SegmentFor(s RFMScores) Segment {
	for _, rule := range segmentRules {
		if rule.match(s) {
			return rule.segment
		}
	}
	return SegmentOccasional
}

// RFMInput métricas crudas de un cliente dentro de la ventana del reporte.
type RFMInput struct {
	CustomerID   string
	CustomerName string
	Recency      Recency
	Frequency    int
	Monetary     decimal.Decimal
}

// RFMAnalysis registro derivado de la segmentación RFM.
// Los clientes Sin Actividad no se puntúan: R, F, M y RFMScore quedan en 0.
type RFMAnalysis struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	RecencyDays  Recency         `json:"recency_days"`
	Frequency    int             `json:"frequency"`
	Monetary     decimal.Decimal `json:"monetary"`
	RScore       Score           `json:"r_score"`
	FScore       Score           `json:"f_score"`
	MScore       Score           `json:"m_score"`
	RFMScore     int             `json:"rfm_score"`
	Segment      Segment         `json:"segment"`
}

// BuildRFMInputs calcula recencia, frecuencia y monto por cliente usando solo
// las ventas completadas dentro de period. La recencia se mide contra now
// (instante de la consulta), no contra el fin de la ventana.
func BuildRFMInputs(customers []entity.Customer, period Period, now time.Time) []RFMInput {
	inputs := make([]RFMInput, 0, len(customers))
	for _, c := range customers {
		in := RFMInput{
			CustomerID:   c.ID,
			CustomerName: c.Name,
			Recency:      NeverPurchased(),
			Monetary:     decimal.Zero,
		}
		var last time.Time
		for _, s := range c.Sales {
			if !s.IsCompleted() || !period.Contains(s.Date) {
				continue
			}
			in.Frequency++
			in.Monetary = in.Monetary.Add(s.TotalAmount)
			if s.Date.After(last) {
				last = s.Date
			}
		}
		if in.Frequency > 0 {
			in.Recency = RecencyOf(DaysBetween(last, now))
		}
		inputs = append(inputs, in)
	}
	return inputs
}

// ClassifyRFM puntúa y segmenta a los clientes.
//
// Los quintiles se calculan solo sobre los clientes con frecuencia > 0; los
// demás se etiquetan Sin Actividad y se agregan al final. El resultado queda
// ordenado por RFMScore descendente.
func ClassifyRFM(inputs []RFMInput) []RFMAnalysis {
	active := make([]RFMInput, 0, len(inputs))
	var inactive []RFMInput
	for _, in := range inputs {
		if _, ok := in.Recency.Days(); ok && in.Frequency > 0 {
			active = append(active, in)
		} else {
			inactive = append(inactive, in)
		}
	}

	result := make([]RFMAnalysis, 0, len(inputs))
	if len(active) > 0 {
		recencies := make([]int, len(active))
		frequencies := make([]int, len(active))
		monetaries := make([]decimal.Decimal, len(active))
		for i, in := range active {
			recencies[i], _ = in.Recency.Days()
			frequencies[i] = in.Frequency
			monetaries[i] = in.Monetary
		}
		rq, _ := ComputeQuintiles(recencies, cmp.Compare[int])
		fq, _ := ComputeQuintiles(frequencies, cmp.Compare[int])
		mq, _ := ComputeQuintiles(monetaries, decimal.Decimal.Cmp)

		for i, in := range active {
			scores := RFMScores{
				R: ScoreAscending(recencies[i], rq, cmp.Compare[int]),
				F: ScoreDescending(in.Frequency, fq, cmp.Compare[int]),
				M: ScoreDescending(in.Monetary, mq, decimal.Decimal.Cmp),
			}
			result = append(result, RFMAnalysis{
				CustomerID:   in.CustomerID,
				CustomerName: in.CustomerName,
				RecencyDays:  in.Recency,
				Frequency:    in.Frequency,
				Monetary:     in.Monetary,
				RScore:       scores.R,
				FScore:       scores.F,
				MScore:       scores.M,
				RFMScore:     scores.Combined(),
				Segment:      SegmentFor(scores),
			})
		}
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].RFMScore > result[j].RFMScore
		})
	}

	for _, in := range inactive {
		result = append(result, RFMAnalysis{
			CustomerID:   in.CustomerID,
			CustomerName: in.CustomerName,
			RecencyDays:  NeverPurchased(),
			Frequency:    0,
			Monetary:     decimal.Zero,
			Segment:      SegmentNoActivity,
		})
	}
	return result
}

// SegmentSummary agregado de un segmento RFM.
type SegmentSummary struct {
	Segment       Segment         `json:"segment"`
	Customers     int             `json:"customers"`
	SharePct      decimal.Decimal `json:"share_pct"`
	TotalMonetary decimal.Decimal `json:"total_monetary"`
	AvgMonetary   decimal.Decimal `json:"avg_monetary"`
}

// SummarizeSegments agrupa los registros por segmento en el orden de Segments,
// incluyendo segmentos vacíos.
func SummarizeSegments(records []RFMAnalysis) []SegmentSummary {
	type acc struct {
		count int
		total decimal.Decimal
	}
	bySegment := make(map[Segment]*acc, len(Segments))
	for _, s := range Segments {
		bySegment[s] = &acc{total: decimal.Zero}
	}
	for _, r := range records {
		a, ok := bySegment[r.Segment]
		if !ok {
			continue
		}
		a.count++
		a.total = a.total.Add(r.Monetary)
	}

	n := decimal.NewFromInt(int64(len(records)))
	out := make([]SegmentSummary, 0, len(Segments))
	for _, s := range Segments {
		a := bySegment[s]
		share, avg := decimal.Zero, decimal.Zero
		if len(records) > 0 {
			share = percent(decimal.NewFromInt(int64(a.count)), n)
		}
		if a.count > 0 {
			avg = a.total.Div(decimal.NewFromInt(int64(a.count))).Round(2)
		}
		out = append(out, SegmentSummary{
			Segment:       s,
			Customers:     a.count,
			SharePct:      share,
			TotalMonetary: a.total.Round(2),
			AvgMonetary:   avg,
		})
	}
	return out
}
