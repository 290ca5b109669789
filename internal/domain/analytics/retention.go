package analytics

import (
	"time"

	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerSet conjunto de IDs de cliente distintos.
type CustomerSet map[string]struct{}

// RetentionPeriod retención de un mes calendario contra el mes anterior.
type RetentionPeriod struct {
	Period             string          `json:"period"` // YYYY-MM
	PeriodStart        time.Time       `json:"period_start"`
	PeriodEnd          time.Time       `json:"period_end"`
	TotalCustomers     int             `json:"total_customers"`
	NewCustomers       int             `json:"new_customers"`
	ReturningCustomers int             `json:"returning_customers"`
	LostCustomers      int             `json:"lost_customers"`
	RetentionRate      decimal.Decimal `json:"retention_rate"`
}

// ComputeRetention compara los clientes del período actual contra el anterior:
// nuevos = actual∖anterior, recurrentes = actual∩anterior, perdidos = anterior∖actual.
// La tasa es recurrentes/|anterior|×100, y 0 si el anterior está vacío.
func ComputeRetention(previous, current CustomerSet) RetentionPeriod {
	var out RetentionPeriod
	for id := range current {
		if _, ok := previous[id]; ok {
			out.ReturningCustomers++
		} else {
			out.NewCustomers++
		}
	}
	out.LostCustomers = len(previous) - out.ReturningCustomers
	out.TotalCustomers = len(current)
	out.RetentionRate = percent(
		decimal.NewFromInt(int64(out.ReturningCustomers)),
		decimal.NewFromInt(int64(len(previous))),
	)
	return out
}

// MonthStart devuelve el primer instante del mes de t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// RetentionWindow devuelve el rango que cubre los months meses que terminan en
// el mes de end más el mes previo al primero (necesario como base de comparación).
func RetentionWindow(end time.Time, months int) Period {
	first := MonthStart(end).AddDate(0, -months, 0)
	last := MonthStart(end).AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Period{Start: first, End: last}
}

// MonthlyRetention calcula la retención de los months meses calendario que
// terminan en el mes de end, en orden cronológico ascendente.
// sales debe cubrir RetentionWindow(end, months); las ventas no completadas se ignoran.
func MonthlyRetention(sales []entity.Sale, end time.Time, months int) []RetentionPeriod {
	if months <= 0 {
		return []RetentionPeriod{}
	}
	byMonth := make(map[string]CustomerSet, months+1)
	for _, s := range sales {
		if !s.IsCompleted() || s.CustomerID == "" {
			continue
		}
		key := s.Date.In(end.Location()).Format("2006-01")
		set, ok := byMonth[key]
		if !ok {
			set = CustomerSet{}
			byMonth[key] = set
		}
		set[s.CustomerID] = struct{}{}
	}

	out := make([]RetentionPeriod, months)
	current := MonthStart(end)
	// Se recorre hacia atrás y se llena desde el final para devolver orden cronológico.
	for i := months - 1; i >= 0; i-- {
		previous := current.AddDate(0, -1, 0)
		p := ComputeRetention(byMonth[previous.Format("2006-01")], byMonth[current.Format("2006-01")])
		p.Period = current.Format("2006-01")
		p.PeriodStart = current
		p.PeriodEnd = current.AddDate(0, 1, 0).Add(-time.Nanosecond)
		out[i] = p
		current = previous
	}
	return out
}
